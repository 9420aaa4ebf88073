package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"travelrental/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CONFIG_FILE", "PORT", "DB_DRIVER", "DB_DSN", "CACHE_TTL", "CACHE_CAPACITY"} {
		t.Setenv(k, "")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.DBDriver != config.DriverSQLite || cfg.DBDSN != "travelrental.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Cache.TTL != 5*time.Minute || cfg.Cache.Capacity != 10000 {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_DSN", "postgres://localhost/rental?sslmode=disable")
	t.Setenv("DB_SEED", "false")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_CAPACITY", "42")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" || cfg.DBDriver != config.DriverPostgres || cfg.DBSeed {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Cache.TTL != 30*time.Second || cfg.Cache.Capacity != 42 {
		t.Fatalf("cache env not applied: %+v", cfg.Cache)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	body := "port: \"7000\"\ndb_dsn: file.db\ncache:\n  capacity: 5\n  num_shards: 2\n  ttl: 1m\n  eviction_percentage: 50\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_CAPACITY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7001" {
		t.Fatalf("env should win over file, got port %s", cfg.Port)
	}
	if cfg.DBDSN != "file.db" || cfg.Cache.Capacity != 5 || cfg.Cache.TTL != time.Minute {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key, val, field string
	}{
		{"CACHE_CAPACITY", "lots", "CACHE_CAPACITY"},
		{"CACHE_EVICTION_PERCENT", "0", "CACHE_EVICTION_PERCENT"},
		{"DB_DRIVER", "mysql", "DB_DRIVER"},
		{"CACHE_TTL", "soon", "CACHE_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			t.Setenv(tc.key, tc.val)
			_, err := config.Load()
			var ce *config.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want ConfigError, got %v", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("want field %s, got %s", tc.field, ce.Field)
			}
		})
	}
}
