// Package config loads isovisor settings from ISOVISOR_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const Prefix = "ISOVISOR"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreLibSQL = "libsql"
)

// Archive drivers.
const (
	ArchiveNone   = "none"
	ArchiveFS     = "fs"
	ArchiveS3     = "s3"
	ArchiveMemory = "memory"
)

type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	StoreDriver     string        `envconfig:"STORE_DRIVER" default:"memory"`
	CSVEncoding     string        `envconfig:"CSV_ENCODING" default:"utf-8-bom"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"8h"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	OTel    OTel
	Archive Archive
}

// OTel holds the OTLP metrics exporter settings (ISOVISOR_OTEL_*).
type OTel struct {
	Enabled  bool   `envconfig:"ENABLED"`
	Endpoint string `envconfig:"ENDPOINT"`
	Insecure bool   `envconfig:"INSECURE"`
}

// Archive holds the issued report archive settings (ISOVISOR_ARCHIVE_*).
type Archive struct {
	Driver      string `envconfig:"DRIVER" default:"none"`
	Dir         string `envconfig:"DIR"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3PathStyle bool   `envconfig:"S3_PATH_STYLE"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver names and the settings each driver needs.
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory, StoreLibSQL:
	default:
		return fmt.Errorf("invalid %s_STORE_DRIVER %q: want %s or %s", Prefix, c.StoreDriver, StoreMemory, StoreLibSQL)
	}

	c.Archive.Driver = strings.ToLower(strings.TrimSpace(c.Archive.Driver))
	switch c.Archive.Driver {
	case "", ArchiveNone:
		c.Archive.Driver = ArchiveNone
	case ArchiveMemory:
	case ArchiveFS:
		if c.Archive.Dir == "" {
			dir, err := DataDir()
			if err != nil {
				return fmt.Errorf("%s_ARCHIVE_DIR not set: %w", Prefix, err)
			}
			c.Archive.Dir = filepath.Join(dir, "reports")
		}
	case ArchiveS3:
		if c.Archive.S3Bucket == "" {
			return fmt.Errorf("%s_ARCHIVE_S3_BUCKET required for the s3 archive", Prefix)
		}
	default:
		return fmt.Errorf("invalid %s_ARCHIVE_DRIVER %q", Prefix, c.Archive.Driver)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid %s_PORT %d", Prefix, c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid %s_SESSION_TTL %s", Prefix, c.SessionTTL)
	}
	return nil
}
