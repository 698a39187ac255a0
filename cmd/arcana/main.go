package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"arcana"
	"arcana/internal/appinfo"
	"arcana/internal/config"
	"arcana/internal/database"
	"arcana/internal/gemini"
	"arcana/internal/handlers"
	"arcana/internal/identity"
	"arcana/internal/middleware"
	"arcana/internal/tarot"
	"arcana/pkg/cache"
	"arcana/pkg/logger"
	"arcana/pkg/utils"
)

func main() {

	utils.LoadEnv()

	startupMessageActive := os.Getenv("STARTUP_LOG_ACTIVE")

	if startupMessageActive != "false" {
		printAsciiLogo()
		printSignature()
	}

	// Load Config & Env
	config.Load()

	// Connect DB
	database.InitDB()
	go database.StartCleaner()

	// App Uptime
	appinfo.StartTime = time.Now()

	// Cache
	appCache := cache.New()
	handlers.SetCache(appCache)

	if err := utils.InitFonts(); err != nil {
		logger.LogWarn("Warning: Font loading failed, share images will skip text. Error: %v", err)
	}

	handlers.SetPipeline(buildPipeline())

	mux := http.NewServeMux()

	// Card Routes
	mux.HandleFunc("POST /api/outfit", handlers.GenerateOutfitHandler)
	mux.HandleFunc("GET /api/outfit/{handle}", handlers.ServeCardImage)
	mux.HandleFunc("GET /api/outfits", handlers.ListCardsHandler)

	// Identity & Share Routes
	mux.HandleFunc("POST /api/identity", handlers.ResolveIdentityHandler)
	mux.HandleFunc("GET /og/{handle}", handlers.ServeShareImage)

	mux.HandleFunc("GET /api/stats", handlers.GetStats)

	finalHandler := middleware.RateLimitMiddleware(middleware.CorsMiddleware(middleware.LoggerMiddleware(mux)))

	port := config.AppConfig.Server.Port

	baseURL := config.AppConfig.GetBaseUrl()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.LogServerStart(port, baseURL)
	log.Fatal(server.ListenAndServe())
}

// buildPipeline wires the generation collaborators from config. The
// Gemini client is optional: without an API key the service still
// composes cards, it just skips cutout and enhancement.
func buildPipeline() *handlers.Pipeline {
	cfg := config.AppConfig

	// A configured directory overrides the embedded backgrounds.
	var catalog *tarot.Catalog
	var err error
	if cfg.Card.BackgroundsDir != "" {
		catalog, err = tarot.LoadCatalogDir(cfg.Card.BackgroundsDir)
	} else {
		catalog, err = tarot.LoadCatalogFS(arcana.BackgroundAssets, arcana.BackgroundAssetDir)
	}
	if err != nil {
		logger.LogFatal("Failed to load background catalog: %v", err)
	}

	gen := &tarot.Generator{
		Catalog:        catalog,
		Cutout:         tarot.PassthroughCutout{},
		Strategy:       tarot.StrategyByName(cfg.Card.Variant),
		PrepareSize:    cfg.Image.PrepareSize,
		MaxSourceDim:   cfg.Image.MaxDimension,
		MaxAvatarBytes: utils.SizeToBytes(cfg.Image.MaxUploadSize, 5*1024*1024),
	}

	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, parseDur(cfg.Gemini.Timeout, 25*time.Second))
		if err != nil {
			logger.LogFatal("Failed to init Gemini client: %v", err)
		}
		gen.Cutout = client
		if cfg.Gemini.EnhanceEnabled {
			gen.Enhancer = client
		}
		logger.LogInfo("Gemini enabled (model: %s, enhance: %v)", cfg.Gemini.Model, cfg.Gemini.EnhanceEnabled)
	} else {
		logger.LogWarn("No Gemini API key set, running with plain compositing only")
	}

	resolver := identity.NewResolver(
		cfg.Identity.Services,
		parseDur(cfg.Identity.ProbeTimeout, 5*time.Second),
		cfg.Identity.PlaceholderSize,
	)

	return &handlers.Pipeline{
		Generator:      gen,
		Resolver:       resolver,
		RequestTimeout: parseDur(cfg.Server.RequestTimeout, 60*time.Second),
		MaxAvatarBytes: gen.MaxAvatarBytes,
	}
}

// parseDur: config validation already rejects malformed durations, the
// default only covers empty values.
func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
