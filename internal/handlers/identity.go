package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"arcana/internal/identity"
	"arcana/internal/tarot"
	"arcana/pkg/logger"
	"arcana/pkg/utils"
)

type identityRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
}

type identityProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
}

type identityResponse struct {
	Success bool            `json:"success"`
	Profile identityProfile `json:"profile"`
}

// ResolveIdentityHandler looks up the avatar URL for a handle without
// generating anything. The front-end uses this as a pre-flight check.
// Path: POST /api/identity
func ResolveIdentityHandler(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid, "Request body must be valid JSON.")
		return
	}

	if req.Handle == "" {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestMissingHandle, "Handle is required.")
		return
	}

	if req.Platform != "" && req.Platform != "twitter" {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrIdentityUnsupported, "Only Twitter is supported.")
		return
	}

	if !tarot.ValidateHandle(req.Handle) {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid,
			"Handle must be 1-15 characters: letters, digits, underscore or hyphen.")
		return
	}
	handle := tarot.NormalizeHandle(req.Handle)

	imageURL, err := pipeline.Resolver.Resolve(r.Context(), handle)
	if err != nil {
		if errors.Is(err, identity.ErrNoAvatar) {
			utils.WriteError(w, http.StatusNotFound, utils.ErrIdentityNotFound,
				"Profile not found or avatar unavailable. The account might be private, suspended, or the handle is incorrect.")
			return
		}
		logger.LogError("Identity resolution failed for %q: %v", handle, err)
		utils.WriteError(w, http.StatusBadGateway, utils.ErrUpstreamFailed, "Failed to resolve identity.")
		return
	}

	logger.LogInfo("Resolved avatar for %q: %s", handle, imageURL)

	utils.WriteJSON(w, http.StatusOK, identityResponse{
		Success: true,
		Profile: identityProfile{
			ID:          handle,
			DisplayName: handle,
			Name:        handle,
			ImageURL:    imageURL,
		},
	})
}
