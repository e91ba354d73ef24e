// Package config loads application configuration from .env files,
// environment variables, and defaults, in that order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults. The footer-row window and row/size caps are heuristics tuned to
// the manifest format in use; they are configurable but these values are
// the supported baseline.
const (
	DefaultListenAddr     = ":8080"
	DefaultMaxUploadBytes = 10 << 20 // 10MiB per upload request
	DefaultMaxRows        = 10000
	DefaultFooterRows     = 15
	DefaultJobTTL         = 2 * time.Hour
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"

	envPrefix = "RECONWEB"
)

// Config holds everything the serve command needs.
type Config struct {
	ListenAddr     string
	MaxUploadBytes int64
	MaxRows        int
	FooterRows     int
	JobTTL         time.Duration
	LogLevel       string
	LogFormat      string
}

// Load reads configuration. A .env file in the working directory is loaded
// first (existing environment wins), then RECONWEB_* environment variables,
// then defaults.
func Load() (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("max_rows", DefaultMaxRows)
	v.SetDefault("footer_rows", DefaultFooterRows)
	v.SetDefault("job_ttl", DefaultJobTTL)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	cfg := &Config{
		ListenAddr:     v.GetString("listen_addr"),
		MaxUploadBytes: v.GetInt64("max_upload_bytes"),
		MaxRows:        v.GetInt("max_rows"),
		FooterRows:     v.GetInt("footer_rows"),
		JobTTL:         v.GetDuration("job_ttl"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}
	return cfg, nil
}

func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}
