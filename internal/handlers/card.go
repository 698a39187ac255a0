package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"arcana/internal/database"
	"arcana/internal/tarot"
	"arcana/pkg/utils"
)

// serveWithETag handles HTTP caching headers (ETag, Cache-Control).
// Returns 304 Not Modified if client's cache is valid.
func serveWithETag(w http.ResponseWriter, r *http.Request, data []byte, mimeType string) {
	hash := sha256.Sum256(data)
	etag := hex.EncodeToString(hash[:])

	if mimeType == "" {
		mimeType = "image/png"
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", `"`+etag+`"`)

	if match := r.Header.Get("If-None-Match"); match != "" {
		if strings.Contains(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Write(data)
}

// ServeCardImage serves a stored card PNG straight from DB, with the
// in-memory cache in front of it.
// Path: GET /api/outfit/{handle}
func ServeCardImage(w http.ResponseWriter, r *http.Request) {
	rawHandle := r.PathValue("handle")
	if !tarot.ValidateHandle(rawHandle) {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid,
			"Handle must be 1-15 characters: letters, digits, underscore or hyphen.")
		return
	}
	handle := tarot.NormalizeHandle(rawHandle)

	cacheKey := "card:" + handle

	if globalCache != nil {
		if cached, ok := globalCache.Get(cacheKey); ok {
			serveWithETag(w, r, cached, "image/png")
			return
		}
	}

	// DB fetch, collapsed across concurrent requests
	data, err, _ := requestGroup.Do("fetch:"+handle, func() (interface{}, error) {
		// Double-check cache inside lock
		if globalCache != nil {
			if cached, ok := globalCache.Get(cacheKey); ok {
				return cached, nil
			}
		}

		outfit, err := database.GetOutfit(r.Context(), handle)
		if err != nil {
			return nil, err
		}

		if globalCache != nil {
			globalCache.Set(cacheKey, outfit.CardPNG)
		}
		return outfit.CardPNG, nil
	})

	if err != nil {
		if errors.Is(err, utils.ErrOutfitNotFound) {
			utils.WriteError(w, http.StatusNotFound, utils.ErrResourceNotFound, "No card found for this handle.")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrServerInternal, "Failed to load card image.")
		return
	}

	serveWithETag(w, r, data.([]byte), "image/png")
}
