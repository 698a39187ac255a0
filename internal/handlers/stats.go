package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"arcana/internal/appinfo"
	"arcana/internal/config"
	"arcana/internal/database"
	"arcana/pkg/utils"
)

// CardDTO is a lightweight card summary for the gallery, no image bytes.
type CardDTO struct {
	Handle    string `json:"handle"`
	Platform  string `json:"platform"`
	Style     string `json:"style"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type StatsDTO struct {
	TotalCount    int64     `json:"total_count"`
	TotalSize     int64     `json:"total_size"`
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	RamUsage      uint64    `json:"ram_usage"`
	NumGoroutines int       `json:"num_goroutines"`
	RecentCards   []CardDTO `json:"recent_cards"`
	MaxUploadSize string    `json:"max_upload_size"`
}

type galleryResponse struct {
	Items      []CardDTO `json:"items"`
	TotalItems int64     `json:"total_items"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

func toCardDTO(o database.Outfit) CardDTO {
	return CardDTO{
		Handle:    o.Handle,
		Platform:  o.Platform,
		Style:     o.Style,
		Size:      o.Size,
		URL:       fmt.Sprintf("%s/api/outfit/%s", config.AppConfig.BaseURL, o.Handle),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}

// GetStats returns server health, memory metrics, and recent activity.
// Path: GET /api/stats
func GetStats(w http.ResponseWriter, r *http.Request) {
	count := appinfo.TotalCardsCount.Load()
	totalSize := appinfo.TotalCardsSize.Load()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	recent, err := database.ListOutfits(r.Context(), 5, 0)
	if err != nil {
		recent = nil
	}

	recentCards := make([]CardDTO, 0, len(recent))
	for _, o := range recent {
		recentCards = append(recentCards, toCardDTO(o))
	}

	uptime := time.Since(appinfo.StartTime)

	utils.WriteJSON(w, http.StatusOK, StatsDTO{
		TotalCount:    count,
		TotalSize:     totalSize,
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		RamUsage:      m.Alloc,
		NumGoroutines: runtime.NumGoroutine(),
		RecentCards:   recentCards,
		MaxUploadSize: utils.FormatBytes(utils.SizeToBytes(config.AppConfig.Image.MaxUploadSize, 5*1024*1024)),
	})
}

// ListCardsHandler returns a paginated gallery of generated cards.
// Path: GET /api/outfits
func ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1, 1, 10000)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20, 1, 50)
	offset := (page - 1) * limit

	outfits, err := database.ListOutfits(r.Context(), limit, offset)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrServerInternal, "Failed to list cards.")
		return
	}

	items := make([]CardDTO, 0, len(outfits))
	for _, o := range outfits {
		items = append(items, toCardDTO(o))
	}

	total := appinfo.TotalCardsCount.Load()
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	utils.WriteJSON(w, http.StatusOK, galleryResponse{
		Items:      items,
		TotalItems: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}
