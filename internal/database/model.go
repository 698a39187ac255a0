package database

import (
	"time"
)

// Outfit is the single "latest" generated card per handle. The unique
// index on Handle backs the upsert-on-conflict semantics: at most one
// live record per normalized handle, each regeneration replaces the
// previous one.
type Outfit struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Handle string `gorm:"uniqueIndex;type:text" json:"handle"`

	Platform string `json:"platform"`
	Style    string `json:"style"`

	// OriginalImageURL is kept only for http-sourced avatars; uploads
	// and data URLs are never persisted standalone.
	OriginalImageURL string `json:"original_image_url,omitempty"`

	CardPNG []byte `gorm:"type:blob" json:"-"`
	Size    int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
