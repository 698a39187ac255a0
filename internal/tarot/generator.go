package tarot

import (
	"bytes"
	"context"

	"arcana/pkg/logger"
)

// CutoutProvider turns a portrait PNG into a best-effort foreground
// cutout with transparent background. Implementations must treat every
// failure as recoverable; the pipeline falls back to the input buffer.
type CutoutProvider interface {
	Cutout(ctx context.Context, portraitPNG []byte) ([]byte, error)
}

// EnhanceProvider optionally re-renders a composited card for polish.
// Same resilience contract as CutoutProvider.
type EnhanceProvider interface {
	Enhance(ctx context.Context, cardPNG []byte, style StyleArchetype) ([]byte, error)
}

// PassthroughCutout is the keyless / offline cutout strategy: the
// avatar is used as-is.
type PassthroughCutout struct{}

func (PassthroughCutout) Cutout(_ context.Context, portraitPNG []byte) ([]byte, error) {
	return portraitPNG, nil
}

// Card is one generated result.
type Card struct {
	PNG        []byte
	Style      StyleArchetype
	Background string
	Enhanced   bool
}

// Generator runs the deterministic card pipeline. All collaborators
// are injected once at startup and shared across requests; the
// generator itself is stateless per call.
type Generator struct {
	Catalog  *Catalog
	Cutout   CutoutProvider
	Enhancer EnhanceProvider // nil disables the enhancement pass
	Strategy CompositionStrategy

	// PrepareSize: bounding box for avatar normalization (default 800)
	PrepareSize int

	// MaxSourceDim: pixel-dimension ceiling for incoming avatars,
	// rejected from the header before any bitmap allocation
	MaxSourceDim int

	// MaxAvatarBytes: upload ceiling enforced before decoding
	MaxAvatarBytes int64
}

// Generate runs style assignment, background selection, avatar
// preparation, cutout, composition and optional enhancement for one
// normalized handle. Only preparation and composition can fail;
// cutout and enhancement degrade to their inputs.
func (g *Generator) Generate(ctx context.Context, handle string, avatarRaw []byte) (*Card, error) {
	style := AssignStyle(handle)
	background := g.Catalog.Select(handle)

	prepared, err := PrepareAvatar(avatarRaw, g.PrepareSize, g.MaxSourceDim, g.MaxAvatarBytes)
	if err != nil {
		return nil, err
	}

	portrait := prepared
	if g.Cutout != nil {
		cut, err := g.Cutout.Cutout(ctx, prepared)
		if err != nil {
			logger.LogWarn("Cutout failed for %q, compositing original avatar: %v", handle, err)
		} else {
			portrait = cut
		}
	}

	cardPNG, err := ComposeCard(portrait, background, g.Strategy)
	if err != nil {
		return nil, err
	}

	card := &Card{
		PNG:        cardPNG,
		Style:      style,
		Background: background.Name,
	}

	if g.Enhancer != nil {
		enhanced, err := g.Enhancer.Enhance(ctx, cardPNG, style)
		switch {
		case err != nil:
			logger.LogWarn("Enhancement failed for %q, keeping base composite: %v", handle, err)
		case len(enhanced) > 0 && !bytes.Equal(enhanced, cardPNG):
			// An identical answer means no enhancement occurred.
			card.PNG = enhanced
			card.Enhanced = true
		}
	}

	return card, nil
}
