package gemini

import (
	"bytes"
	"context"
	"fmt"

	"arcana/internal/tarot"
	"arcana/pkg/logger"
)

const enhancePromptTemplate = `
You are editing a tarot-style trading card image.

CONTEXT:
- The card already has the correct frame and background art.
- A portrait photo is composited on top, but it looks like a pasted rectangle.
- The card archetype is %s: %s

HARD RULES (DO NOT BREAK):
- Keep the person's identity: do NOT change facial features, skin tone, expression, pose, or hairstyle.
- Do NOT change or move any text, font, or wording.
- Do NOT crop the card or change its aspect ratio.

WHAT YOU MUST DO:
1. Reposition and rescale the portrait so the head and shoulders sit naturally in the center of the card art.
2. Add a clearly visible soft glow around the person using warm cream, peach, mint, or teal tones.
3. Remove any harsh straight edges of the portrait and blend it smoothly into the background.

STYLE:
- Maintain the overall flat, graphic tarot aesthetic.
- No new text, icons, or heavy textures.

OUTPUT:
- Return ONE edited PNG of the entire card.
`

// Enhance re-renders a composited card for polish. A byte-identical
// answer means no enhancement occurred: nil is returned so the caller
// keeps the base composite unmarked. Implements tarot.EnhanceProvider.
func (c *Client) Enhance(ctx context.Context, cardPNG []byte, style tarot.StyleArchetype) ([]byte, error) {
	prompt := fmt.Sprintf(enhancePromptTemplate, style.Name, style.Description)

	result, err := c.editImage(ctx, cardPNG, prompt)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(result.Data, cardPNG) {
		logger.LogWarn("Enhancement returned an identical image, keeping the base card.")
		return nil, nil
	}

	return result.Data, nil
}
