package tarot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"regexp"

	_ "image/gif" // avatar intake formats
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrImageDecode   = errors.New("input is not a decodable image")
	ErrImageTooLarge = errors.New("input image exceeds the upload ceiling")
)

var dataURLRegex = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// DecodeDataURL extracts the raw bytes of a base64 data URL.
func DecodeDataURL(u string) ([]byte, error) {
	matches := dataURLRegex.FindStringSubmatch(u)
	if len(matches) != 3 {
		return nil, fmt.Errorf("%w: invalid base64 data URL", ErrImageDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return raw, nil
}

// PrepareAvatar normalizes an arbitrary input picture for card
// composition: enforce the byte and pixel-dimension ceilings, decode
// (PNG/JPEG/GIF), fit inside a boxSize square without upscaling, and
// re-encode as PNG so a downstream cutout's alpha channel survives.
// The dimension ceiling is checked from the image header before the
// full decode: a byte-small file can still declare enormous dimensions
// and would otherwise allocate the whole bitmap.
func PrepareAvatar(raw []byte, boxSize, maxDim int, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 && int64(len(raw)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	if maxDim > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
		}
		if cfg.Width > maxDim || cfg.Height > maxDim {
			return nil, ErrImageTooLarge
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	b := img.Bounds()
	if b.Dx() > boxSize || b.Dy() > boxSize {
		img = imaging.Fit(img, boxSize, boxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode prepared avatar: %w", err)
	}
	return buf.Bytes(), nil
}
