package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"arcana/pkg/utils"
)

// GetOutfit loads the latest record for a normalized handle.
// Returns utils.ErrOutfitNotFound when none exists.
func GetOutfit(ctx context.Context, handle string) (*Outfit, error) {
	var outfit Outfit
	err := DB.WithContext(ctx).First(&outfit, "handle = ?", handle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOutfitNotFound
		}
		return nil, err
	}
	return &outfit, nil
}

// GetOutfitMeta loads a record without the card blob, for listings.
func GetOutfitMeta(ctx context.Context, handle string) (*Outfit, error) {
	var outfit Outfit
	err := DB.WithContext(ctx).
		Select("id", "handle", "platform", "style", "original_image_url", "size", "created_at", "updated_at").
		First(&outfit, "handle = ?", handle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrOutfitNotFound
		}
		return nil, err
	}
	return &outfit, nil
}

// SaveOutfit upserts the record keyed by handle: an existing row for
// the same handle is overwritten (latest-only cache, last-write-wins).
func SaveOutfit(ctx context.Context, outfit *Outfit) error {
	if outfit.ID == "" {
		outfit.ID = uuid.New().String()
	}
	outfit.Size = int64(len(outfit.CardPNG))
	outfit.UpdatedAt = time.Now()

	return DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "handle"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platform", "style", "original_image_url", "card_png", "size", "updated_at",
		}),
	}).Create(outfit).Error
}

// ListOutfits returns recent records newest-first, without card blobs.
// The page size is capped: card payloads make large pages expensive.
func ListOutfits(ctx context.Context, limit, offset int) ([]Outfit, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var outfits []Outfit
	err := DB.WithContext(ctx).
		Select("id", "handle", "platform", "style", "size", "created_at", "updated_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&outfits).Error
	return outfits, err
}
