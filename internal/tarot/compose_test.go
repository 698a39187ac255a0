package tarot

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyByName(t *testing.T) {
	assert.Equal(t, CompositionShowcase, StrategyByName("showcase"))
	assert.Equal(t, CompositionClassic, StrategyByName("classic"))
	assert.Equal(t, CompositionClassic, StrategyByName(""))
	assert.Equal(t, CompositionClassic, StrategyByName("unknown"))
}

func TestComposeCardCanvasSize(t *testing.T) {
	bgData := pngBytes(t, 440, 760, color.NRGBA{R: 0x3D, G: 0x40, B: 0x5B, A: 255})
	bgImg, _, err := image.Decode(bytes.NewReader(bgData))
	require.NoError(t, err)
	bg := &BackgroundAsset{Name: "bg.png", Image: bgImg, Width: 440, Height: 760}

	avatar := pngBytes(t, 800, 800, color.White)

	out, err := ComposeCard(avatar, bg, CompositionClassic)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	// Output always matches the background's native size.
	assert.Equal(t, 440, img.Bounds().Dx())
	assert.Equal(t, 760, img.Bounds().Dy())
}

func TestComposeCardOpaque(t *testing.T) {
	// Background with transparency must still flatten to opaque output.
	bgData := pngBytes(t, 100, 100, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	bgImg, _, err := image.Decode(bytes.NewReader(bgData))
	require.NoError(t, err)
	bg := &BackgroundAsset{Name: "bg.png", Image: bgImg, Width: 100, Height: 100}

	avatar := pngBytes(t, 40, 40, color.NRGBA{R: 200, G: 0, B: 0, A: 255})

	out, err := ComposeCard(avatar, bg, CompositionClassic)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 7 {
		for x := b.Min.X; x < b.Max.X; x += 7 {
			_, _, _, a := img.At(x, y).RGBA()
			require.Equal(t, uint32(0xFFFF), a, "pixel (%d,%d) not opaque", x, y)
		}
	}
}

func TestComposeCardSmallAvatarNotUpscaled(t *testing.T) {
	bgData := pngBytes(t, 440, 760, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	bgImg, _, err := image.Decode(bytes.NewReader(bgData))
	require.NoError(t, err)
	bg := &BackgroundAsset{Name: "bg.png", Image: bgImg, Width: 440, Height: 760}

	// A 50x50 avatar is below the classic 242x418 portrait box. Its
	// white pixels must land centered at the strategy's top offset,
	// still 50px wide.
	avatar := pngBytes(t, 50, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out, err := ComposeCard(avatar, bg, CompositionClassic)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// y = round(760 * 0.22) = 167, x = (440-50)/2 = 195
	r, g, b, _ := img.At(220, 190).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0xFFFF), b)

	// Just left of the avatar box stays background black.
	r, _, _, _ = img.At(190, 190).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestComposeCardBadAvatar(t *testing.T) {
	bgData := pngBytes(t, 100, 100, color.White)
	bgImg, _, err := image.Decode(bytes.NewReader(bgData))
	require.NoError(t, err)
	bg := &BackgroundAsset{Name: "bg.png", Image: bgImg, Width: 100, Height: 100}

	_, err = ComposeCard([]byte("garbage"), bg, CompositionClassic)
	assert.ErrorIs(t, err, ErrImageDecode)
}
