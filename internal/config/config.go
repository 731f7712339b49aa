package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Parser ParserConfig
	Upload UploadConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig holds spreadsheet store settings.
type StoreConfig struct {
	ReferenceFile string        `mapstructure:"reference_file"`
	ExtractedFile string        `mapstructure:"extracted_file"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// ParserProviderConfig holds settings for a single LLM provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM invoice parser settings. Primary is tried first,
// Fallback (when configured) picks up after a primary failure.
type ParserConfig struct {
	Primary  ParserProviderConfig `mapstructure:"primary"`
	Fallback ParserProviderConfig `mapstructure:"fallback"`
}

// FallbackConfig returns the fallback provider config, or nil if not configured.
func (p *ParserConfig) FallbackConfig() *ParserProviderConfig {
	if p.Fallback.Provider != "" {
		return &p.Fallback
	}
	return nil
}

// UploadConfig holds invoice upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.reference_file", "data/Case Study Data.xlsx")
	v.SetDefault("store.extracted_file", "data/Extracted_Orders.xlsx")
	v.SetDefault("store.cache_ttl", "60s")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 16)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Parser defaults: OpenAI primary, Gemini fallback
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "")
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.fallback.provider", "gemini")
	v.SetDefault("parser.fallback.api_key", "")
	v.SetDefault("parser.fallback.default_model", "")
	v.SetDefault("parser.fallback.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DOCEX_SERVER_PORT",
		"server.read_timeout":            "DOCEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DOCEX_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DOCEX_SERVER_ENVIRONMENT",
		"store.reference_file":           "DOCEX_STORE_REFERENCE_FILE",
		"store.extracted_file":           "DOCEX_STORE_EXTRACTED_FILE",
		"store.cache_ttl":                "DOCEX_STORE_CACHE_TTL",
		"upload.max_file_size_mb":        "DOCEX_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":                      "DOCEX_LOG_LEVEL",
		"log.format":                     "DOCEX_LOG_FORMAT",
		"cors.allowed_origins":           "DOCEX_CORS_ALLOWED_ORIGINS",
		"parser.primary.provider":        "DOCEX_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "DOCEX_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "DOCEX_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.timeout_secs":    "DOCEX_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.fallback.provider":       "DOCEX_PARSER_FALLBACK_PROVIDER",
		"parser.fallback.api_key":        "DOCEX_PARSER_FALLBACK_API_KEY",
		"parser.fallback.default_model":  "DOCEX_PARSER_FALLBACK_DEFAULT_MODEL",
		"parser.fallback.timeout_secs":   "DOCEX_PARSER_FALLBACK_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Legacy single-key convenience: OPENAI_API_KEY / GEMINI_API_KEY without
	// the DOCEX_ prefix, the way the demo was originally deployed.
	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCEX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		ReferenceFile: v.GetString("store.reference_file"),
		ExtractedFile: v.GetString("store.extracted_file"),
		CacheTTL:      v.GetDuration("store.cache_ttl"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Fallback: ParserProviderConfig{
			Provider:     v.GetString("parser.fallback.provider"),
			APIKey:       v.GetString("parser.fallback.api_key"),
			DefaultModel: v.GetString("parser.fallback.default_model"),
			TimeoutSecs:  v.GetInt("parser.fallback.timeout_secs"),
		},
	}
	if cfg.Parser.Primary.APIKey == "" {
		cfg.Parser.Primary.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Parser.Fallback.APIKey == "" {
		cfg.Parser.Fallback.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}
