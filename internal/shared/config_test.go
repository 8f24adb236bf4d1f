package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./lyricbook.db" {
			t.Errorf("expected database path ./lyricbook.db, got %s", config.Database.Path)
		}

		if config.Store.Driver != "sqlite" {
			t.Errorf("expected store driver sqlite, got %s", config.Store.Driver)
		}

		if config.Genius.BaseURL != "https://api.genius.com" {
			t.Errorf("expected genius base url https://api.genius.com, got %s", config.Genius.BaseURL)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[store]
driver = "redis"
redis_url = "redis://cache:6379/2"

[genius]
access_token = "file-token"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Store.Driver != "redis" {
			t.Errorf("expected store driver redis, got %s", config.Store.Driver)
		}

		if config.Store.Namespace != "lyricbook" {
			t.Errorf("expected namespace to keep default lyricbook, got %s", config.Store.Namespace)
		}

		if config.Genius.TimeoutSeconds != 15 {
			t.Errorf("expected timeout to keep default 15, got %d", config.Genius.TimeoutSeconds)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvGeniusToken, "env-token")
		t.Setenv(EnvStoreDriver, "memory")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Genius.AccessToken != "env-token" {
			t.Errorf("expected token env-token, got %s", config.Genius.AccessToken)
		}
		if config.Store.Driver != "memory" {
			t.Errorf("expected driver memory, got %s", config.Store.Driver)
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("LYRICBOOK_TEST_VALUE=from-dotenv\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("LYRICBOOK_TEST_VALUE") })

		if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"), envPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("LYRICBOOK_TEST_VALUE"); got != "from-dotenv" {
			t.Errorf("expected from-dotenv, got %q", got)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{"unknown driver", func(c *Config) { c.Store.Driver = "etcd" }},
			{"sqlite without path", func(c *Config) { c.Database.Path = "" }},
			{"redis without url", func(c *Config) { c.Store.Driver = "redis"; c.Store.RedisURL = "" }},
			{"negative rate", func(c *Config) { c.Genius.RequestsPerSecond = -1 }},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
