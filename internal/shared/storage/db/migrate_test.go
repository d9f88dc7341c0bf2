package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"resume-screener/internal/shared/telemetry"
)

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil database to be a no-op, got %v", err)
	}
}

func TestResumesMigrationShape(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, "migrations/00001_create_resumes.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	sql := string(raw)
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE", "resumes", "JSONB", "storage_key"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected migration to contain %q", want)
		}
	}
}

func TestGooseLoggerWritesStructuredLines(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.Replace(zap.New(core))
	defer restore()

	gooseLogger{}.Printf("OK   %s (%s)\n", "00001_create_resumes.sql", "12ms")

	entries := logs.FilterMessage("db.migrate").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["detail"]; got != "OK   00001_create_resumes.sql (12ms)" {
		t.Fatalf("unexpected detail: %v", got)
	}
}
