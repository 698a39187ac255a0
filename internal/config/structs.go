package config

type Config struct {
	// App: Global application metadata
	App InConfigAppConfig `mapstructure:"app"`

	// Server: Network configuration and execution environment
	Server ServerConfig `mapstructure:"server"`

	// Database: SQLite engine parameters and retention policies
	Database DatabaseConfig `mapstructure:"database"`

	// Image: Global constraints for avatar intake and preparation
	Image ImageConfig `mapstructure:"image"`

	// Card: Compositing parameters for the tarot card pipeline
	Card CardConfig `mapstructure:"card"`

	// Gemini: External AI image model configuration
	Gemini GeminiConfig `mapstructure:"gemini"`

	// Identity: Avatar-lookup fallback chain configuration
	Identity IdentityConfig `mapstructure:"identity"`

	// Cache: In-memory cache settings to reduce DB reads
	Cache CacheConfig `mapstructure:"cache"`

	// Security: CORS whitelist and rate limiting
	Security SecurityConfig `mapstructure:"security"`

	// BaseURL: The public-facing root URL used for absolute link generation
	BaseURL string `mapstructure:"base_url"`
}

type InConfigAppConfig struct {
	// Name: Identity of the service used in headers and logs (e.g., "Arcana")
	Name string `mapstructure:"name"`

	// Version: Application semantic version (e.g., "0.1.0")
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	// Port: The TCP port the HTTP server will bind to (default: 9980)
	Port int `mapstructure:"port"`

	// Env: Execution context (development, staging, production)
	Env string `mapstructure:"env"`

	// RequestTimeout: Total budget for one generation request (e.g., "60s")
	RequestTimeout string `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	// Path: Physical location of the SQLite database file (e.g., ./data/arcana.db)
	Path string `mapstructure:"path"`

	// MaxSize: Soft limit for DB size before pruning triggers (e.g., "2GB")
	MaxSize string `mapstructure:"max_size"`

	// PruneInterval: Frequency of background cleanup tasks (e.g., "5m", "1h")
	PruneInterval string `mapstructure:"prune_interval"`
}

type ImageConfig struct {
	// PrepareSize: Bounding box for the normalized avatar before compositing
	PrepareSize int `mapstructure:"prepare_size"`

	// MaxDimension: Pixel width/height ceiling for incoming avatars.
	// Checked against the image header before the full decode.
	MaxDimension int `mapstructure:"max_dimension"`

	// MaxUploadSize: Maximum accepted avatar payload (e.g., "5MB")
	MaxUploadSize string `mapstructure:"max_upload_size"`
}

type CardConfig struct {
	// BackgroundsDir: Directory holding the card background catalog.
	// Empty means the embedded default deck is used.
	BackgroundsDir string `mapstructure:"backgrounds_dir"`

	// Variant: Composition variant name ("classic" or "showcase")
	Variant string `mapstructure:"variant"`
}

type GeminiConfig struct {
	// APIKey: Gemini API key. Empty disables cutout and enhancement,
	// the pipeline then runs in passthrough mode.
	APIKey string `mapstructure:"api_key"`

	// Model: Image-capable model identifier (e.g., "gemini-2.5-flash-image")
	Model string `mapstructure:"model"`

	// EnhanceEnabled: Toggles the post-composite enhancement pass
	EnhanceEnabled bool `mapstructure:"enhance_enabled"`

	// Timeout: Per-call budget for one Gemini request (e.g., "25s")
	Timeout string `mapstructure:"timeout"`
}

type IdentityConfig struct {
	// Services: Ordered avatar-lookup URL templates, "%s" expands to the handle
	Services []string `mapstructure:"services"`

	// ProbeTimeout: Budget for a single service probe (e.g., "5s")
	ProbeTimeout string `mapstructure:"probe_timeout"`

	// PlaceholderSize: Exact byte length of the upstream default avatar.
	// Responses of this size are rejected as placeholders.
	PlaceholderSize int64 `mapstructure:"placeholder_size"`
}

type CacheConfig struct {
	// Enabled: Toggles the in-memory card caching layer
	Enabled bool `mapstructure:"enabled"`

	// MaxCapacity: Maximum RAM allocated for cache in MB (e.g., 100)
	MaxCapacity int `mapstructure:"max_capacity"`

	// TTL: Expiration time for cached items (e.g., "30m", "24h")
	TTL string `mapstructure:"ttl"`
}

type SecurityConfig struct {
	// CorsOrigins: List of allowed domains for browser-based cross-origin requests
	CorsOrigins []string `mapstructure:"cors_origins"`

	// RateLimit: Protection logic using a token-bucket algorithm
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	// Enabled: Global toggle for the rate limiting middleware
	Enabled bool `mapstructure:"enabled"`

	// Requests: Number of allowed requests per time window
	Requests int `mapstructure:"requests"`

	// Window: The timeframe for the request limit (e.g., "1s", "1m")
	Window string `mapstructure:"window"`

	// Burst: Temporary allowed spike capacity above the steady-rate limit
	Burst int `mapstructure:"burst"`
}
