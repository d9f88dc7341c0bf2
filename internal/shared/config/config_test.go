package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "OBJECT_STORE", "MIN_TEXT_CHARS", "MAX_UPLOAD_BYTES", "TIKA_URL", "ARCHIVE_UPLOADS", "TIKA_TIMEOUT"} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())

	cfg := Load()

	if cfg.Env != "dev" || cfg.Port != "8080" {
		t.Fatalf("unexpected env/port: %s %s", cfg.Env, cfg.Port)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("unexpected store type: %s", cfg.ObjectStoreType)
	}
	if cfg.MinTextChars != 100 {
		t.Fatalf("expected MinTextChars=100, got %d", cfg.MinTextChars)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.TikaURL != "" {
		t.Fatalf("expected fallback off by default")
	}
	if !cfg.ArchiveUploads {
		t.Fatalf("expected archive on by default")
	}
	if cfg.TikaTimeout != 60*time.Second {
		t.Fatalf("unexpected tika timeout: %s", cfg.TikaTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.example , ,http://b.example")
	t.Setenv("MIN_TEXT_CHARS", "250")
	t.Setenv("ARCHIVE_UPLOADS", "false")
	t.Setenv("TIKA_URL", " http://tika:9998 ")
	t.Setenv("TIKA_TIMEOUT", "5s")
	t.Setenv("PARSE_RATE_LIMIT_RPS", "0.5")

	cfg := Load()

	if cfg.Env != "production" || cfg.ObjectStoreType != "s3" {
		t.Fatalf("unexpected env/store: %s %s", cfg.Env, cfg.ObjectStoreType)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.MinTextChars != 250 || cfg.ArchiveUploads {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.TikaURL != "http://tika:9998" || cfg.TikaTimeout != 5*time.Second {
		t.Fatalf("unexpected tika settings: %q %s", cfg.TikaURL, cfg.TikaTimeout)
	}
	if cfg.ParseRateLimitRPS != 0.5 {
		t.Fatalf("unexpected rps: %v", cfg.ParseRateLimitRPS)
	}
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MIN_TEXT_CHARS", "abc")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	cfg := Load()

	if cfg.MinTextChars != 100 || cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected defaults, got %d %d", cfg.MinTextChars, cfg.MaxUploadBytes)
	}
}

func TestDotenvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9999\nVOCABULARY_FILE=vocab.yaml\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7070")
	t.Setenv("VOCABULARY_FILE", "")
	os.Unsetenv("VOCABULARY_FILE")

	cfg := Load()

	if cfg.Port != "7070" {
		t.Fatalf("expected environment to win, got %s", cfg.Port)
	}
	if cfg.VocabularyFile != "vocab.yaml" {
		t.Fatalf("expected .env value, got %q", cfg.VocabularyFile)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
