package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"arcana/pkg/logger"
)

var AppConfig *Config

func (c *Config) GetBaseUrl() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", c.Server.Port)
}

func Load() {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ARCANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("database.path", "ARCANA_DATABASE_PATH")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("card.backgrounds_dir", "ARCANA_BACKGROUNDS_DIR")
	v.BindEnv("server.port", "APP_PORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.LogInfo("Config file not found. Using Environment Variables and Defaults.")
		} else {
			logger.LogWarn("Config file found but unreadable: %v", err)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("[CRITICAL] Error: Failed to parse configuration: %v", err)
	}

	AppConfig.BaseURL = AppConfig.GetBaseUrl()

	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("[FATAL] CONFIGURATION ERROR: %v", err)
	}

	logger.LogInfo("⚙️  %s v%s Initialized | Env: %s | Port: %d",
		AppConfig.App.Name,
		AppConfig.App.Version,
		AppConfig.Server.Env,
		AppConfig.Server.Port,
	)
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "Arcana")
	v.SetDefault("app.version", "0.1.0")

	// Server
	v.SetDefault("server.port", 9980)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.request_timeout", "60s")

	// Image intake
	v.SetDefault("image.prepare_size", 800)
	v.SetDefault("image.max_dimension", 4096)
	v.SetDefault("image.max_upload_size", "5MB")

	// Card pipeline
	v.SetDefault("card.backgrounds_dir", "")
	v.SetDefault("card.variant", "classic")

	// Gemini
	v.SetDefault("gemini.model", "gemini-2.5-flash-image")
	v.SetDefault("gemini.enhance_enabled", true)
	v.SetDefault("gemini.timeout", "25s")

	// Identity resolution
	v.SetDefault("identity.services", []string{
		"https://unavatar.io/x/%s",
		"https://unavatar.io/twitter/%s",
	})
	v.SetDefault("identity.probe_timeout", "5s")
	v.SetDefault("identity.placeholder_size", 1506)

	// Caching
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_capacity", 100) // 100 MB
	v.SetDefault("cache.ttl", "30m")

	// Security & Limits
	v.SetDefault("security.rate_limit.enabled", true)
	v.SetDefault("security.rate_limit.requests", 20)
	v.SetDefault("security.rate_limit.window", "1s")
	v.SetDefault("security.rate_limit.burst", 50)

	// Database
	v.SetDefault("database.path", "./data/arcana.db")
	v.SetDefault("database.max_size", "2GB")
	v.SetDefault("database.prune_interval", "5m")
}

func (c *Config) Validate() error {
	// Gemini: the pipeline degrades gracefully without a key, but a
	// production deployment without one is almost certainly a mistake.
	if c.Gemini.APIKey == "" {
		if c.Server.Env == "production" {
			return fmt.Errorf("gemini.api_key is required in production environment")
		}
		logger.LogWarn("GEMINI_API_KEY not set. Cutout and enhancement run in passthrough mode.")
	}

	if len(c.Identity.Services) == 0 {
		return fmt.Errorf("identity.services must list at least one avatar service")
	}

	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("invalid server.request_timeout format '%s': %v", c.Server.RequestTimeout, err)
	}

	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini.timeout format '%s': %v", c.Gemini.Timeout, err)
	}

	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache.ttl format '%s': %v", c.Cache.TTL, err)
	}

	if _, err := time.ParseDuration(c.Security.RateLimit.Window); err != nil {
		return fmt.Errorf("invalid rate_limit.window format '%s': %v", c.Security.RateLimit.Window, err)
	}

	return nil
}
