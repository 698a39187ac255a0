package handlers

import (
	"time"

	"golang.org/x/sync/singleflight"

	"arcana/internal/identity"
	"arcana/internal/tarot"
	"arcana/pkg/cache"
)

var (
	// Global in-memory cache for hot card bytes
	globalCache *cache.MemoryCache

	// SingleFlight group: concurrent generation requests for the same
	// handle collapse into one pipeline run. Best effort only, the
	// database upsert stays last-write-wins.
	requestGroup singleflight.Group

	// pipeline holds the injected collaborators, constructed once at
	// startup. Handlers never build clients per request.
	pipeline *Pipeline
)

// Pipeline bundles everything one generation request needs.
type Pipeline struct {
	Generator *tarot.Generator
	Resolver  *identity.Resolver

	// RequestTimeout bounds the total external-call latency of one
	// generation request (default 60s).
	RequestTimeout time.Duration

	// MaxAvatarBytes: upload ceiling, enforced on fetches and data URLs.
	MaxAvatarBytes int64
}

func SetCache(c *cache.MemoryCache) {
	globalCache = c
}

func SetPipeline(p *Pipeline) {
	pipeline = p
}
