package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"arcana/internal/database"
	"arcana/internal/tarot"
	"arcana/pkg/logger"
	"arcana/pkg/utils"
)

const (
	ogWidth  = 1200
	ogHeight = 630
)

var (
	ogBackground = color.NRGBA{R: 0x3D, G: 0x40, B: 0x5B, A: 0xFF}
	ogTextColor  = color.NRGBA{R: 0xF4, G: 0xF1, B: 0xDE, A: 0xFF}
)

// ServeShareImage renders a landscape preview for link unfurls: the
// stored card on the left, handle and style on the right.
// Path: GET /og/{handle}
func ServeShareImage(w http.ResponseWriter, r *http.Request) {
	rawHandle := r.PathValue("handle")
	if !tarot.ValidateHandle(rawHandle) {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid,
			"Handle must be 1-15 characters: letters, digits, underscore or hyphen.")
		return
	}
	handle := tarot.NormalizeHandle(rawHandle)

	cacheKey := "og:" + handle

	if globalCache != nil {
		if cached, ok := globalCache.Get(cacheKey); ok {
			serveWithETag(w, r, cached, "image/png")
			return
		}
	}

	data, err, _ := requestGroup.Do(cacheKey, func() (interface{}, error) {
		if globalCache != nil {
			if cached, ok := globalCache.Get(cacheKey); ok {
				return cached, nil
			}
		}

		outfit, err := database.GetOutfit(r.Context(), handle)
		if err != nil {
			return nil, err
		}

		rendered, err := renderShareImage(outfit)
		if err != nil {
			return nil, err
		}

		if globalCache != nil {
			globalCache.Set(cacheKey, rendered)
		}
		return rendered, nil
	})

	if err != nil {
		if errors.Is(err, utils.ErrOutfitNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.ErrResourceNotFound, "No card found for this handle.")
			return
		}
		logger.LogError("Share image render failed for %q: %v", handle, err)
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrServerInternal, "Failed to render share image.")
		return
	}

	serveWithETag(w, r, data.([]byte), "image/png")
}

func renderShareImage(outfit *database.Outfit) ([]byte, error) {
	card, err := imaging.Decode(bytes.NewReader(outfit.CardPNG))
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(ogWidth, ogHeight, ogBackground)

	// Card fills the left half, leaving a margin top and bottom.
	cardBox := ogHeight - 80
	card = imaging.Fit(card, cardBox, cardBox, imaging.Lanczos)
	cardX := 120 - card.Bounds().Dx()/2 + cardBox/2
	cardY := (ogHeight - card.Bounds().Dy()) / 2
	canvas = imaging.Paste(canvas, card, image.Pt(cardX, cardY))

	textX := 160 + cardBox
	drawOGText(canvas, "@"+outfit.Handle, 64, textX, 280)
	drawOGText(canvas, outfit.Style, 36, textX, 360)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawOGText(img *image.NRGBA, text string, size, x, y int) {
	face := utils.GetFont(size)
	if face == nil {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ogTextColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
