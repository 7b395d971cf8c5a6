package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != StoreMemory {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.CSVEncoding != "utf-8-bom" || cfg.Archive.Driver != ArchiveNone {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ISOVISOR_PORT", "9090")
	t.Setenv("ISOVISOR_STORE_DRIVER", "LibSQL")
	t.Setenv("ISOVISOR_OTEL_ENABLED", "true")
	t.Setenv("ISOVISOR_OTEL_ENDPOINT", "collector:4317")
	t.Setenv("ISOVISOR_ARCHIVE_DRIVER", "s3")
	t.Setenv("ISOVISOR_ARCHIVE_S3_BUCKET", "reports")
	t.Setenv("ISOVISOR_ARCHIVE_S3_PATH_STYLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 || cfg.StoreDriver != StoreLibSQL {
		t.Errorf("unexpected server settings: %+v", cfg)
	}
	if !cfg.OTel.Enabled || cfg.OTel.Endpoint != "collector:4317" {
		t.Errorf("unexpected otel settings: %+v", cfg.OTel)
	}
	if cfg.Archive.S3Bucket != "reports" || !cfg.Archive.S3PathStyle || cfg.Archive.S3Region != "us-east-1" {
		t.Errorf("unexpected archive settings: %+v", cfg.Archive)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad store", func(c *Config) { c.StoreDriver = "postgres" }, "STORE_DRIVER"},
		{"s3 without bucket", func(c *Config) { c.Archive.Driver = ArchiveS3 }, "ARCHIVE_S3_BUCKET"},
		{"bad archive", func(c *Config) { c.Archive.Driver = "ftp" }, "ARCHIVE_DRIVER"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "SESSION_TTL"},
		{"ok", func(c *Config) {}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Port: 8080, StoreDriver: StoreMemory, SessionTTL: time.Hour}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FSArchiveDefaultsToDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	cfg := Config{Port: 8080, StoreDriver: StoreMemory, SessionTTL: time.Hour, Archive: Archive{Driver: "FS"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "isovisor", "reports"); cfg.Archive.Dir != want {
		t.Errorf("archive dir = %q, want %q", cfg.Archive.Dir, want)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/ana")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if want := filepath.Join("/home/ana", ".local", "share", "isovisor"); dir != want {
		t.Errorf("DataDir() = %q, want %q", dir, want)
	}
}
