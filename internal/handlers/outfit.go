package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"arcana/internal/appinfo"
	"arcana/internal/database"
	"arcana/internal/identity"
	"arcana/internal/tarot"
	"arcana/pkg/logger"
	"arcana/pkg/utils"
)

type generateRequest struct {
	Handle          string `json:"handle"`
	ImageURL        string `json:"imageUrl"`
	ForceRegenerate bool   `json:"forceRegenerate"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"` // base64 PNG
	Style   string `json:"style"`
	Cached  bool   `json:"cached"`
}

// cacheProbeSentinel: the front-end sends this as imageUrl when it only
// wants to know whether a cached card exists.
const cacheProbeSentinel = "cached"

// GenerateOutfitHandler runs the card pipeline for one handle:
// cache check, avatar resolution, generation, best-effort persistence.
// Path: POST /api/outfit
func GenerateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	// Data URLs carry the avatar inline; budget for base64 expansion.
	r.Body = http.MaxBytesReader(w, r.Body, pipeline.MaxAvatarBytes*2)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestBodyTooLarge, "Request body is too large.")
			return
		}
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid, "Request body must be valid JSON.")
		return
	}

	if !tarot.ValidateHandle(req.Handle) {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid,
			"Handle must be 1-15 characters: letters, digits, underscore or hyphen.")
		return
	}
	handle := tarot.NormalizeHandle(req.Handle)

	ctx := r.Context()
	if pipeline.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pipeline.RequestTimeout)
		defer cancel()
	}

	// CACHE_CHECK
	if !req.ForceRegenerate {
		if outfit, err := database.GetOutfit(ctx, handle); err == nil {
			logger.LogInfo("Returning cached card for %q", handle)
			utils.WriteJSON(w, http.StatusOK, generateResponse{
				Success: true,
				Image:   base64.StdEncoding.EncodeToString(outfit.CardPNG),
				Style:   outfit.Style,
				Cached:  true,
			})
			return
		} else if !errors.Is(err, utils.ErrOutfitNotFound) {
			logger.LogError("Cache lookup failed for %q: %v", handle, err)
		}
	}

	// Cache-probe request and nothing cached: signal a miss, do not generate.
	if req.ImageURL == cacheProbeSentinel {
		utils.WriteJSON(w, http.StatusNotFound, map[string]interface{}{
			"code":    utils.ErrResourceNotFound,
			"message": "No cached card found for this handle.",
			"status":  http.StatusNotFound,
			"cached":  false,
		})
		return
	}

	// RESOLVE_AVATAR
	avatarRaw, originalURL, err := resolveAvatar(ctx, handle, req.ImageURL)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	// GENERATE (collapsed across concurrent requests for the same handle)
	result, err, _ := requestGroup.Do("gen:"+handle, func() (interface{}, error) {
		return pipeline.Generator.Generate(ctx, handle, avatarRaw)
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	card := result.(*tarot.Card)

	// PERSIST (best effort: failures never fail the request)
	persistCard(ctx, handle, originalURL, card)

	// DONE
	utils.WriteJSON(w, http.StatusOK, generateResponse{
		Success: true,
		Image:   base64.StdEncoding.EncodeToString(card.PNG),
		Style:   card.Style.Name,
		Cached:  false,
	})
}

// resolveAvatar obtains the raw avatar bytes: inline data URL, direct
// http URL, or the external lookup chain when no image was supplied.
// The returned URL is empty for inline payloads.
func resolveAvatar(ctx context.Context, handle, imageURL string) ([]byte, string, error) {
	switch {
	case strings.HasPrefix(imageURL, "data:"):
		raw, err := tarot.DecodeDataURL(imageURL)
		return raw, "", err

	case strings.HasPrefix(imageURL, "http"):
		raw, err := pipeline.Resolver.FetchImage(ctx, imageURL, pipeline.MaxAvatarBytes)
		return raw, imageURL, err

	case imageURL == "":
		url, err := pipeline.Resolver.Resolve(ctx, handle)
		if err != nil {
			return nil, "", err
		}
		raw, err := pipeline.Resolver.FetchImage(ctx, url, pipeline.MaxAvatarBytes)
		return raw, url, err

	default:
		return nil, "", tarot.ErrImageDecode
	}
}

func persistCard(ctx context.Context, handle, originalURL string, card *tarot.Card) {
	var oldSize int64 = -1
	if existing, err := database.GetOutfitMeta(ctx, handle); err == nil {
		oldSize = existing.Size
	}

	outfit := &database.Outfit{
		Handle:           handle,
		Platform:         "twitter",
		Style:            card.Style.Name,
		OriginalImageURL: originalURL,
		CardPNG:          card.PNG,
	}

	if err := database.SaveOutfit(ctx, outfit); err != nil {
		logger.LogError("Failed to persist card for %q: %v", handle, err)
		return
	}

	if oldSize >= 0 {
		appinfo.ReplaceCard(oldSize, outfit.Size)
	} else {
		appinfo.AddCard(outfit.Size)
	}

	if globalCache != nil {
		globalCache.Set("card:"+handle, card.PNG)
		globalCache.Delete("og:" + handle)
	}

	logger.LogSuccess("Saved card for %q (style: %s, background: %s)", handle, card.Style.Name, card.Background)
}

// writePipelineError maps pipeline failures onto the API error taxonomy.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrNoAvatar):
		utils.WriteError(w, http.StatusNotFound, utils.ErrIdentityNotFound,
			"Profile not found or avatar unavailable. The account might be private, suspended, or the handle is incorrect.")

	case errors.Is(err, tarot.ErrImageTooLarge), errors.Is(err, identity.ErrImageTooLarge):
		utils.WriteError(w, http.StatusBadRequest, utils.ErrImageTooLarge,
			"The avatar image exceeds the 5MB upload limit.")

	case errors.Is(err, tarot.ErrImageDecode):
		utils.WriteError(w, http.StatusBadRequest, utils.ErrImageDecodeFailed,
			"The supplied image could not be decoded. Use PNG or JPEG, or a base64 data URL.")

	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, http.StatusGatewayTimeout, utils.ErrServerTimeout,
			"Card generation timed out. Please try again.")

	default:
		logger.LogError("Card generation failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrImageGenerationFailed,
			"We couldn't generate your card, please try again.")
	}
}
