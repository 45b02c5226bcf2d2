package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment exposes error stack traces in API responses
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds application configuration
type Config struct {
	ServerPort  string
	Environment string
	DataDir     string
	LogDir      string
	LogLevel    string

	// whatsmeow device store
	DBDialect string
	DBAddress string

	// Name shown in the phone's linked devices list
	OSName string

	// Also render QR codes on the console
	QRTerminal bool
}

// NewConfig creates a new configuration from the environment.
// A .env file in the working directory is loaded first when present.
func NewConfig() *Config {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a configuration using lookup to read variables
func FromLookup(lookup func(string) (string, bool)) *Config {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		ServerPort:  get("PORT", "5001"),
		Environment: strings.ToLower(get("APP_ENV", EnvProduction)),
		DataDir:     get("DATA_DIR", "data"),
		LogDir:      get("LOG_DIR", "logs"),
		LogLevel:    get("LOG_LEVEL", "info"),
		DBDialect:   get("WA_DB_DIALECT", "sqlite3"),
		OSName:      get("WA_OS_NAME", "Linux"),
	}
	cfg.DBAddress = get("WA_DB_ADDRESS", cfg.defaultDBAddress())

	if b, err := strconv.ParseBool(get("QR_TERMINAL", "false")); err == nil {
		cfg.QRTerminal = b
	}

	return cfg
}

func (c *Config) defaultDBAddress() string {
	path := filepath.Join(c.DataDir, "whatsapp.db")
	if c.DBDialect == "sqlite" {
		return "file:" + path + "?_pragma=foreign_keys(1)"
	}
	return "file:" + path + "?_foreign_keys=on"
}

// IsDevelopment reports whether stack traces may be exposed
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// EnsureDataDir ensures the data directory exists
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// GetCorsConfig returns CORS configuration for the application
func (c *Config) GetCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Type", "X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}
