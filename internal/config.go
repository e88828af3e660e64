package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Environment string              `mapstructure:"environment"`
	Server      ServerConfig        `mapstructure:"http_server"`
	Database    DatabaseConfig      `mapstructure:"database"`
	Security    SecurityConfig      `mapstructure:"security"`
	Uploads     UploadConfig        `mapstructure:"uploads"`
	Logging     LoggingConfig       `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type SecurityConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	TokenExpireHours int    `mapstructure:"token_expire_hours"`
	BCryptCost       int    `mapstructure:"bcrypt_cost"`
	// DisableAuth resolves every request to a synthetic admin identity.
	// Local development only; Validate rejects it outside development.
	DisableAuth bool `mapstructure:"disable_auth"`
}

type UploadConfig struct {
	Dir          string   `mapstructure:"dir"`
	EvidenceSub  string   `mapstructure:"evidence_subdir"`
	MaxMB        int64    `mapstructure:"max_mb"`
	AllowedMimes []string `mapstructure:"allowed_mimes"`
	GCSBucket    string   `mapstructure:"gcs_bucket"`
	GCSPrefix    string   `mapstructure:"gcs_prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultAllowedMimes covers evidence formats the frontend accepts:
// images, PDF, Excel/CSV and compressed archives.
var DefaultAllowedMimes = []string{
	"image/jpeg", "image/png", "image/gif",
	"application/pdf",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/csv",
	"application/zip",
	"application/x-zip-compressed",
	"application/x-rar-compressed",
	"application/x-7z-compressed",
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}
	if err := c.Security.Validate(c.Environment); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}
	if err := c.Uploads.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("uploads config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		for _, origin := range strings.Split(c.AllowedOrigins, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

// IsPostgres reports whether the DSN points at PostgreSQL; anything else is
// treated as a SQLite file path for local development.
func (c *DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.Source, "postgres://") || strings.HasPrefix(c.Source, "postgresql://")
}

func (c *SecurityConfig) Validate(environment string) error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.TokenExpireHours <= 0 {
		return errors.New("token_expire_hours must be positive")
	}
	if c.BCryptCost != 0 && (c.BCryptCost < 10 || c.BCryptCost > 15) {
		return errors.New("bcrypt_cost must be between 10 and 15")
	}
	if c.DisableAuth && environment == "production" {
		return errors.New("disable_auth cannot be enabled in production")
	}
	return nil
}

func (c *UploadConfig) Validate() error {
	if c.MaxMB <= 0 {
		return errors.New("max_mb must be positive")
	}
	return nil
}

func (c *UploadConfig) MaxBytes() int64 {
	return c.MaxMB * 1024 * 1024
}

func (c *UploadConfig) Mimes() []string {
	if len(c.AllowedMimes) == 0 {
		return DefaultAllowedMimes
	}
	return c.AllowedMimes
}
