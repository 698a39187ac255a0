package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcana/internal/config"
	"arcana/pkg/utils"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "arcana-db-test")
	if err != nil {
		panic(err)
	}

	config.AppConfig = &config.Config{}
	config.AppConfig.Database.Path = filepath.Join(tmpDir, "arcana.db")
	config.AppConfig.Database.MaxSize = "50MB"

	InitDB()

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestGetOutfitNotFound(t *testing.T) {
	_, err := GetOutfit(context.Background(), "nobody")
	assert.ErrorIs(t, err, utils.ErrOutfitNotFound)
}

func TestSaveAndGetOutfit(t *testing.T) {
	ctx := context.Background()

	outfit := &Outfit{
		Handle:           "saveget",
		Platform:         "twitter",
		Style:            "THE_MOON",
		OriginalImageURL: "https://unavatar.io/x/saveget",
		CardPNG:          []byte("card-bytes"),
	}
	require.NoError(t, SaveOutfit(ctx, outfit))

	// ID and size are filled on save.
	assert.NotEmpty(t, outfit.ID)
	assert.Equal(t, int64(len("card-bytes")), outfit.Size)

	got, err := GetOutfit(ctx, "saveget")
	require.NoError(t, err)
	assert.Equal(t, []byte("card-bytes"), got.CardPNG)
	assert.Equal(t, "THE_MOON", got.Style)
}

func TestSaveOutfitUpsertsByHandle(t *testing.T) {
	ctx := context.Background()

	first := &Outfit{Handle: "upserter", Platform: "twitter", Style: "THE_SUN", CardPNG: []byte("v1")}
	require.NoError(t, SaveOutfit(ctx, first))

	second := &Outfit{Handle: "upserter", Platform: "twitter", Style: "THE_STAR", CardPNG: []byte("v2-longer")}
	require.NoError(t, SaveOutfit(ctx, second))

	// Only the latest card survives per handle.
	var count int64
	require.NoError(t, DB.Model(&Outfit{}).Where("handle = ?", "upserter").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := GetOutfit(ctx, "upserter")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2-longer"), got.CardPNG)
	assert.Equal(t, "THE_STAR", got.Style)
	assert.Equal(t, int64(len("v2-longer")), got.Size)
}

func TestGetOutfitMetaOmitsBlob(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, SaveOutfit(ctx, &Outfit{
		Handle:  "metaonly",
		Style:   "THE_WORLD",
		CardPNG: []byte("blob-data"),
	}))

	meta, err := GetOutfitMeta(ctx, "metaonly")
	require.NoError(t, err)
	assert.Empty(t, meta.CardPNG)
	assert.Equal(t, int64(len("blob-data")), meta.Size)
	assert.Equal(t, "THE_WORLD", meta.Style)
}

func TestListOutfits(t *testing.T) {
	ctx := context.Background()

	for _, h := range []string{"lister-one", "lister-two", "lister-three"} {
		require.NoError(t, SaveOutfit(ctx, &Outfit{Handle: h, Style: "THE_SUN", CardPNG: []byte(h)}))
	}

	outfits, err := ListOutfits(ctx, 50, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(outfits), 3)

	for _, o := range outfits {
		assert.Empty(t, o.CardPNG, "listing must not carry blobs")
	}
}

func TestListOutfitsCapsLimit(t *testing.T) {
	outfits, err := ListOutfits(context.Background(), 9999, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(outfits), 50)
}
