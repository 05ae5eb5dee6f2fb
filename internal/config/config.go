package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// StorageConfig holds S3-compatible object storage settings.
// Participant buckets live in Cloud Storage and are reached through its
// interoperability endpoint with HMAC keys.
type StorageConfig struct {
	Endpoint  string `env:"STORAGE_ENDPOINT" envDefault:"storage.googleapis.com"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Region    string `env:"STORAGE_REGION" envDefault:"auto"`
	UseSSL    bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	ListV1    bool   `env:"STORAGE_LIST_V1" envDefault:"true"`
}

// WarehouseConfig holds BigQuery settings.
type WarehouseConfig struct {
	Dataset         string        `env:"WAREHOUSE_DATASET" envDefault:"standardized_new"`
	Location        string        `env:"WAREHOUSE_LOCATION" envDefault:"US"`
	Timeout         time.Duration `env:"WAREHOUSE_TIMEOUT" envDefault:"100s"`
	CredentialsFile string        `env:"WAREHOUSE_CREDENTIALS_FILE"`
}

// AuthConfig holds ID token verification and session settings.
type AuthConfig struct {
	TokenInfoURL  string        `env:"AUTH_TOKENINFO_URL" envDefault:"https://oauth2.googleapis.com/tokeninfo"`
	SessionSecret string        `env:"AUTH_SESSION_SECRET"`
	ClientID      string        `env:"AUTH_CLIENT_ID"`
	SessionTTL    time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`
	Issuer        string        `env:"AUTH_ISSUER" envDefault:"meterportal"`
}

// PortalConfig holds participant modelling settings.
type PortalConfig struct {
	Projects      []string          `env:"PORTAL_PROJECTS" envDefault:"production-epbp" envSeparator:","`
	DashboardURL  string            `env:"PORTAL_DASHBOARD_URL" envDefault:"https://datastudio.google.com/embed/reporting/c1a3bf5e-ae01-4ca5-b05f-0127fbcc82b6/page/p_nsipm3ylzc"`
	DashboardURLs map[string]string `env:"PORTAL_DASHBOARD_URLS" envDefault:"production-epbp=https://datastudio.google.com/embed/reporting/c1a3bf5e-ae01-4ca5-b05f-0127fbcc82b6/page/p_nsipm3ylzc" envSeparator:"," envKeyValSeparator:"="`
	Concurrency   int               `env:"PORTAL_CONCURRENCY" envDefault:"8"`
	PresignExpiry time.Duration     `env:"PORTAL_PRESIGN_EXPIRY" envDefault:"15m"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port      string `env:"PORT" envDefault:"8080"`
	Timezone  string `env:"APP_TIMEZONE" envDefault:"UTC"`
	Database  DatabaseConfig
	Storage   StorageConfig
	Warehouse WarehouseConfig
	Auth      AuthConfig
	Portal    PortalConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Portal.Concurrency <= 0 {
		cfg.Portal.Concurrency = 1
	}
	return cfg, nil
}

// Location resolves the configured timezone used for log timestamps.
// Unknown zones fall back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DashboardFor returns the private dashboard URL for a project.
func (c PortalConfig) DashboardFor(project string) string {
	if u, ok := c.DashboardURLs[project]; ok && u != "" {
		return u
	}
	return DefaultDashboardURI
}

// DefaultDashboardURI is used for projects without a configured dashboard.
const DefaultDashboardURI = "datastudio.google.com"
