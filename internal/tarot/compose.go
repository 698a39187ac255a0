package tarot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// CompositionStrategy holds the named placement constants of one card
// layout variant. The fractions are design choices per variant, never
// derived at runtime.
type CompositionStrategy struct {
	Name string

	// PortraitFrac: the avatar bounding box as a fraction of canvas
	// width and height.
	PortraitFrac float64

	// TopFrac: the avatar top edge as a fraction of canvas height.
	TopFrac float64
}

var (
	// CompositionClassic keeps the portrait small and high, leaving
	// room for the card frame art. Default.
	CompositionClassic = CompositionStrategy{Name: "classic", PortraitFrac: 0.55, TopFrac: 0.22}

	// CompositionShowcase fills more of the card with the portrait,
	// used when the enhancement pass repaints the blending anyway.
	CompositionShowcase = CompositionStrategy{Name: "showcase", PortraitFrac: 0.70, TopFrac: 0.42}
)

// StrategyByName resolves a configured variant name, defaulting to classic.
func StrategyByName(name string) CompositionStrategy {
	if name == CompositionShowcase.Name {
		return CompositionShowcase
	}
	return CompositionClassic
}

// ComposeCard places a prepared avatar onto a background asset. The
// background's native resolution defines the canvas: the output always
// has exactly the background's dimensions, never cropped or letterboxed.
// The avatar is fitted into the strategy's portrait box (no upscaling),
// horizontally centered, alpha-composited, and the result is flattened
// to a fully opaque PNG.
func ComposeCard(avatarPNG []byte, bg *BackgroundAsset, strat CompositionStrategy) ([]byte, error) {
	avatar, err := imaging.Decode(bytes.NewReader(avatarPNG))
	if err != nil {
		return nil, fmt.Errorf("%w: avatar buffer: %v", ErrImageDecode, err)
	}

	boxW := int(math.Round(float64(bg.Width) * strat.PortraitFrac))
	boxH := int(math.Round(float64(bg.Height) * strat.PortraitFrac))

	ab := avatar.Bounds()
	if ab.Dx() > boxW || ab.Dy() > boxH {
		avatar = imaging.Fit(avatar, boxW, boxH, imaging.Lanczos)
		ab = avatar.Bounds()
	}

	x := (bg.Width - ab.Dx()) / 2
	y := int(math.Round(float64(bg.Height) * strat.TopFrac))

	// Opaque base guarantees the flattened output carries no alpha even
	// if the background asset itself has transparency.
	canvas := imaging.New(bg.Width, bg.Height, color.NRGBA{255, 255, 255, 255})
	canvas = imaging.Overlay(canvas, bg.Image, image.Pt(0, 0), 1.0)
	canvas = imaging.Overlay(canvas, avatar, image.Pt(x, y), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode card: %w", err)
	}
	return buf.Bytes(), nil
}
