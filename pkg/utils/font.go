package utils

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"arcana/pkg/logger"
)

var (
	parsedFont *opentype.Font
	initMu     sync.Mutex
)

// InitFonts parses the bundled typeface once. Safe to call more than once.
func InitFonts() error {
	initMu.Lock()
	defer initMu.Unlock()
	if parsedFont != nil {
		return nil
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	parsedFont = f
	return nil
}

func GetFont(size int) font.Face {
	if parsedFont == nil {
		logger.LogWarn("⚠️ Font not initialized! Call InitFonts first.")
		return nil
	}

	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.LogError("failed to create font face for size %d: %v", size, err)
		return nil
	}

	return face
}
