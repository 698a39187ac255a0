package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
)

const cutoutPrompt = `
You are editing a single portrait photo.

GOAL:
- Isolate the main person (head and shoulders) and remove the background.

RULES:
- Keep the person's face, expression, hair, and posture exactly as they are.
- Do NOT add any new background, shapes, frames, or text.
- The output must be a PNG with a transparent background (alpha channel).

WHAT TO DO:
- Remove the entire original background.
- Keep only the person (and headphones if present).
- Make sure the background pixels are fully transparent, not a solid color.
`

// ErrOpaqueCutout means the model answered with an image that carries
// no transparency, which is useless as a cutout.
var ErrOpaqueCutout = errors.New("cutout result has no alpha channel")

// Cutout asks the image model for a transparent foreground cutout of
// the given portrait PNG. Any failure, including an opaque result, is
// returned as an error; the pipeline then composites the original
// avatar instead. Implements tarot.CutoutProvider.
func (c *Client) Cutout(ctx context.Context, portraitPNG []byte) ([]byte, error) {
	result, err := c.editImage(ctx, portraitPNG, cutoutPrompt)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		return nil, fmt.Errorf("cutout result is not a decodable image: %w", err)
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return nil, ErrOpaqueCutout
	}

	return result.Data, nil
}
