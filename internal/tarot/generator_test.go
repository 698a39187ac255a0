package tarot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCutout struct {
	out []byte
	err error
}

func (f fakeCutout) Cutout(_ context.Context, _ []byte) ([]byte, error) {
	return f.out, f.err
}

type fakeEnhancer struct {
	out []byte
	err error
}

func (f fakeEnhancer) Enhance(_ context.Context, card []byte, _ StyleArchetype) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.out == nil {
		return card, nil
	}
	return f.out, f.err
}

// nilEnhancer signals "no enhancement occurred" the way a provider
// does for a byte-identical model answer.
type nilEnhancer struct{}

func (nilEnhancer) Enhance(_ context.Context, _ []byte, _ StyleArchetype) ([]byte, error) {
	return nil, nil
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	return &Generator{
		Catalog:        testCatalog(t, 5),
		Cutout:         PassthroughCutout{},
		Strategy:       CompositionClassic,
		PrepareSize:    800,
		MaxSourceDim:   4096,
		MaxAvatarBytes: 5 * 1024 * 1024,
	}
}

func TestGenerateBasic(t *testing.T) {
	g := testGenerator(t)
	avatar := pngBytes(t, 300, 300, color.NRGBA{R: 120, G: 80, B: 60, A: 255})

	card, err := g.Generate(context.Background(), "moonchild", avatar)
	require.NoError(t, err)

	assert.Equal(t, "THE_MOON", card.Style.Name)
	assert.Equal(t, "bg-c.png", card.Background)
	assert.False(t, card.Enhanced)

	img, _, err := image.Decode(bytes.NewReader(card.PNG))
	require.NoError(t, err)
	assert.Equal(t, 440, img.Bounds().Dx())
	assert.Equal(t, 760, img.Bounds().Dy())
}

func TestGenerateDeterministic(t *testing.T) {
	g := testGenerator(t)
	avatar := pngBytes(t, 300, 300, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	a, err := g.Generate(context.Background(), "jack", avatar)
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), "jack", avatar)
	require.NoError(t, err)

	assert.Equal(t, a.Style, b.Style)
	assert.Equal(t, a.Background, b.Background)
	assert.Equal(t, a.PNG, b.PNG)
}

func TestGenerateCutoutFailureFallsBack(t *testing.T) {
	g := testGenerator(t)
	g.Cutout = fakeCutout{err: errors.New("upstream down")}

	avatar := pngBytes(t, 300, 300, color.White)
	card, err := g.Generate(context.Background(), "jack", avatar)

	// Cutout failure never fails the card.
	require.NoError(t, err)
	assert.NotEmpty(t, card.PNG)

	// The fallback is exact: same output as a passthrough cutout.
	plain := testGenerator(t)
	want, err := plain.Generate(context.Background(), "jack", avatar)
	require.NoError(t, err)
	assert.Equal(t, want.PNG, card.PNG)
}

func TestGenerateEnhancerFailureFallsBack(t *testing.T) {
	g := testGenerator(t)
	g.Enhancer = fakeEnhancer{err: errors.New("quota exceeded")}

	avatar := pngBytes(t, 300, 300, color.White)
	card, err := g.Generate(context.Background(), "jack", avatar)

	require.NoError(t, err)
	assert.False(t, card.Enhanced)
	assert.NotEmpty(t, card.PNG)
}

func TestGenerateEnhancerIdenticalResultNotEnhanced(t *testing.T) {
	g := testGenerator(t)
	// The zero-value fake echoes the card back unchanged.
	g.Enhancer = fakeEnhancer{}

	avatar := pngBytes(t, 300, 300, color.White)
	card, err := g.Generate(context.Background(), "jack", avatar)

	require.NoError(t, err)
	assert.False(t, card.Enhanced)

	plain := testGenerator(t)
	want, err := plain.Generate(context.Background(), "jack", avatar)
	require.NoError(t, err)
	assert.Equal(t, want.PNG, card.PNG)
}

func TestGenerateEnhancerNilResultNotEnhanced(t *testing.T) {
	g := testGenerator(t)
	g.Enhancer = nilEnhancer{}

	avatar := pngBytes(t, 300, 300, color.White)
	card, err := g.Generate(context.Background(), "jack", avatar)

	require.NoError(t, err)
	assert.False(t, card.Enhanced)
	assert.NotEmpty(t, card.PNG)
}

func TestGenerateEnhancerApplied(t *testing.T) {
	g := testGenerator(t)
	replacement := pngBytes(t, 440, 760, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	g.Enhancer = fakeEnhancer{out: replacement}

	avatar := pngBytes(t, 300, 300, color.White)
	card, err := g.Generate(context.Background(), "jack", avatar)

	require.NoError(t, err)
	assert.True(t, card.Enhanced)
	assert.Equal(t, replacement, card.PNG)
}

func TestGenerateRejectsOversizedAvatar(t *testing.T) {
	g := testGenerator(t)
	g.MaxAvatarBytes = 10

	_, err := g.Generate(context.Background(), "jack", pngBytes(t, 50, 50, color.White))
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestGenerateRejectsGarbage(t *testing.T) {
	g := testGenerator(t)

	_, err := g.Generate(context.Background(), "jack", []byte("not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)
}
