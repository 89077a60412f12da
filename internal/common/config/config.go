package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/waitlist-site/backend/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrUnsupportedStore   = errors.New("unsupported store url scheme")
)

type StoreKind string

const (
	StorePostgres StoreKind = "postgres"
	StoreMongo    StoreKind = "mongo"
)

type SiteConfig struct {
	HTTPPort           string        `env:"PORT"                 envDefault:"5000"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	MongoURI           string        `env:"MONGO_URI"`
	MongoDatabase      string        `env:"MONGO_DATABASE"       envDefault:"site"`
	AdminPassword      string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash  string        `env:"ADMIN_PASSWORD_HASH"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"      envDefault:"5s"`
	StaticDir          string        `env:"STATIC_DIR"           envDefault:"public"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogDir             string        `env:"LOG_DIR"              envDefault:"/var/log/waitlist-site"`
	LogLevel           string        `env:"LOG_LEVEL"            envDefault:"INFO"`

	// ContentSecurityPolicy is sent on /api/ responses only. Empty selects
	// the built-in policy.
	ContentSecurityPolicy string `env:"CONTENT_SECURITY_POLICY"`

	Store StoreKind
}

// StoreURL prefers DATABASE_URL and falls back to the legacy MONGO_URI.
func (c SiteConfig) StoreURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.MongoURI
}

func LoadSiteConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse env: %w", err)
	}

	storeURL := cfg.StoreURL()
	if storeURL == "" {
		return SiteConfig{}, fmt.Errorf("%w: DATABASE_URL", ErrMissingRequiredEnv)
	}

	kind, err := ParseStoreKind(storeURL)
	if err != nil {
		return SiteConfig{}, err
	}
	cfg.Store = kind

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return SiteConfig{}, fmt.Errorf("%w: ADMIN_PASSWORD", ErrMissingRequiredEnv)
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = constants.DefaultHTTPPort
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = constants.DefaultMongoDatabase
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = constants.DefaultRequestTimeout
	}

	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)

	return cfg, nil
}

func ParseStoreKind(rawURL string) (StoreKind, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedStore, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return StorePostgres, nil
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStore, u.Scheme)
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
