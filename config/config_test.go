package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: minutes-worker
environment: production
mongo:
  uri: mongodb://db:27017
  database: minutes
queue:
  max_attempts: 5
  base_delay: 4s
worker:
  concurrency: 8
transcription:
  provider: whisper
  settings:
    url: http://whisper:8387
`)

	var cfg ServiceConfig
	if err := Load("minutes-worker", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("mongo.uri = %q", cfg.Mongo.URI)
	}
	if cfg.Queue.MaxAttempts != 5 || cfg.Queue.BaseDelay != 4*time.Second {
		t.Errorf("queue = %+v", cfg.Queue)
	}
	if cfg.Worker.Concurrency != 8 {
		t.Errorf("worker.concurrency = %d", cfg.Worker.Concurrency)
	}
	if cfg.Transcription.Provider != "whisper" {
		t.Errorf("transcription.provider = %q", cfg.Transcription.Provider)
	}
	if got, ok := cfg.Transcription.Settings["url"].(string); !ok || got != "http://whisper:8387" {
		t.Errorf("transcription.settings.url = %v", cfg.Transcription.Settings["url"])
	}
}

func TestLoadEnvFileOverlay(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yml", `
name: minutes-worker
mongo:
  uri: mongodb://localhost:27017
  database: minutes
`)
	envPath := writeFile(t, dir, ".env", "MONGO_DATABASE=minutes_test\n")
	t.Cleanup(func() { os.Unsetenv("MONGO_DATABASE") })

	var cfg ServiceConfig
	if err := Load("minutes-worker", &cfg, WithConfigFile(cfgPath), WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mongo.Database != "minutes_test" {
		t.Errorf("mongo.database = %q, want env overlay applied", cfg.Mongo.Database)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	var cfg ServiceConfig
	if err := Load("minutes-worker", &cfg, WithConfigFile("/nonexistent/config.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg ServiceConfig
	cfg.ApplyDefaults()

	if cfg.Name != "minutes-worker" || cfg.Environment != "development" {
		t.Errorf("identity defaults = %q/%q", cfg.Name, cfg.Environment)
	}
	if cfg.Queue.MaxAttempts != 3 || cfg.Queue.BaseDelay != 2*time.Second {
		t.Errorf("queue defaults = %+v", cfg.Queue)
	}
	if cfg.Queue.LeaseTimeout != 5*time.Minute {
		t.Errorf("lease timeout = %v", cfg.Queue.LeaseTimeout)
	}
	if cfg.Worker.Concurrency != 2 || cfg.Worker.PollInterval != time.Second {
		t.Errorf("worker defaults = %+v", cfg.Worker)
	}
	if cfg.Worker.MaxAudioBytes != 25<<20 {
		t.Errorf("max audio bytes = %d", cfg.Worker.MaxAudioBytes)
	}
	if cfg.Transcription.Provider != "mock" || cfg.Summarization.Provider != "mock" {
		t.Errorf("provider defaults = %q/%q", cfg.Transcription.Provider, cfg.Summarization.Provider)
	}
	if cfg.Mongo.Collection != "meetings" {
		t.Errorf("mongo collection = %q", cfg.Mongo.Collection)
	}
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	var cfg ServiceConfig
	cfg.ApplyDefaults()
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "minutes"
	cfg.Environment = "qa"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown environment")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	var cfg ServiceConfig
	cfg.ApplyDefaults()
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "minutes"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
