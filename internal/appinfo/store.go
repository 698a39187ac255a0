package appinfo

import (
	"sync/atomic"
	"time"
)

var StartTime time.Time

var (
	TotalCardsCount atomic.Int64
	TotalCardsSize  atomic.Int64
)

// AddCard: called when a card is generated for a new handle
func AddCard(size int64) {
	TotalCardsCount.Add(1)
	TotalCardsSize.Add(size)
}

// ReplaceCard: called when a regeneration overwrites an existing record
func ReplaceCard(oldSize, newSize int64) {
	TotalCardsSize.Add(newSize - oldSize)
}

// RemoveCard: called when a record is pruned
func RemoveCard(size int64) {
	TotalCardsCount.Add(-1)
	TotalCardsSize.Add(-size)
}

// SetInitialStats: writes the first data loaded from the database at startup.
func SetInitialStats(count, size int64) {
	TotalCardsCount.Store(count)
	TotalCardsSize.Store(size)
}
