package database

import (
	"os"
	"time"

	"arcana/internal/appinfo"
	"arcana/internal/config"
	"arcana/pkg/logger"
	"arcana/pkg/utils"
)

// StartCleaner runs the background storage maintenance worker. Card
// blobs are large (hundreds of KB each), so the database grows fast:
// when the physical file exceeds the configured limit the worker either
// VACUUMs (file mostly empty after deletions) or prunes the oldest
// records until usage drops to 85% of the limit.
func StartCleaner() {
	maxSizeStr := config.AppConfig.Database.MaxSize
	maxSize := utils.SizeToBytes(maxSizeStr, 2*1024*1024*1024) // Default 2GB

	intervalStr := config.AppConfig.Database.PruneInterval
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		interval = 30 * time.Minute
	}

	logger.LogInfo("Storage Cleaner started. Limit: %s, Interval: %s", maxSizeStr, interval)

	ticker := time.NewTicker(interval)

	// Run immediately on startup to fix bloated states from previous runs.
	go checkAndPrune(maxSize)

	for range ticker.C {
		checkAndPrune(maxSize)
	}
}

func checkAndPrune(limitBytes int64) {
	dbPath := config.AppConfig.Database.Path

	fileInfo, err := os.Stat(dbPath)
	if err != nil {
		logger.LogError("Cleaner failed to stat DB file: %v", err)
		return
	}

	physicalSize := fileInfo.Size()
	// Include WAL file in size calculation as it consumes disk space
	if walInfo, err := os.Stat(dbPath + "-wal"); err == nil {
		physicalSize += walInfo.Size()
	}

	// Below the limit: keep the allocated space for future writes,
	// SQLite reuses freed pages without expensive reallocation.
	if physicalSize < limitBytes {
		return
	}

	var logicalSize int64
	row := DB.Model(&Outfit{}).Select("IFNULL(SUM(size), 0)").Row()
	if err := row.Scan(&logicalSize); err != nil {
		logger.LogError("Failed to calculate logical size: %v", err)
		return
	}

	emptySpace := physicalSize - logicalSize
	isBloated := float64(emptySpace) > (float64(physicalSize) * 0.50)

	logger.LogInfo("Storage Analysis - Phys: %s | Logic: %s | Free: %s",
		utils.FormatBytes(physicalSize),
		utils.FormatBytes(logicalSize),
		utils.FormatBytes(emptySpace))

	// MODE A: VACUUM (the file is large but mostly empty)
	if isBloated {
		logger.LogWarn("DB is bloated (>50%% empty). Starting VACUUM to reclaim space...")

		// Commit WAL to main DB before vacuuming
		DB.Exec("PRAGMA wal_checkpoint(TRUNCATE);")

		startTime := time.Now()
		if err := DB.Exec("VACUUM;").Error; err != nil {
			logger.LogError("VACUUM failed: %v", err)
		} else {
			logger.LogInfo("VACUUM completed in %v. Disk space reclaimed.", time.Since(startTime))
		}
		return
	}

	// MODE B: PRUNE the oldest cards (LRU on updated_at) until usage
	// drops to 85% of the limit.
	targetSize := int64(float64(limitBytes) * 0.85)
	bytesToRemove := logicalSize - targetSize

	if bytesToRemove <= 0 {
		return
	}

	logger.LogInfo("Storage limit reached. Pruning ~%s of old cards...", utils.FormatBytes(bytesToRemove))

	deletedCount := 0
	var freedBytes int64 = 0
	loopGuard := 0

	// Batch processing to avoid long locks
	for freedBytes < bytesToRemove && loopGuard < 1000 {
		loopGuard++
		var outfits []Outfit

		if err := DB.Select("id, size").Order("updated_at ASC").Limit(50).Find(&outfits).Error; err != nil {
			logger.LogError("Prune fetch failed: %v", err)
			break
		}

		if len(outfits) == 0 {
			break
		}

		idsToDelete := make([]string, 0, len(outfits))
		for _, o := range outfits {
			idsToDelete = append(idsToDelete, o.ID)
			freedBytes += o.Size
			appinfo.RemoveCard(o.Size)
		}

		if err := DB.Where("id IN ?", idsToDelete).Delete(&Outfit{}).Error; err != nil {
			logger.LogError("Prune delete failed: %v", err)
			break
		}

		deletedCount += len(idsToDelete)

		time.Sleep(50 * time.Millisecond)
	}

	logger.LogInfo("Pruning complete. Removed %d cards.", deletedCount)
}
