package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

func TestStatusWithoutDatabase(t *testing.T) {
	ok, payload := NewService(nil).Status(context.Background())
	if !ok {
		t.Fatalf("expected healthy")
	}
	if payload["storage"] != "memory" {
		t.Fatalf("unexpected storage: %v", payload["storage"])
	}
}

func TestStatusDatabaseUp(t *testing.T) {
	ok, payload := NewService(stubPinger{}).Status(context.Background())
	if !ok || payload["storage"] != "postgres" {
		t.Fatalf("unexpected status: %v %v", ok, payload)
	}
}

func TestStatusDatabaseDown(t *testing.T) {
	ok, payload := NewService(stubPinger{err: errors.New("connection refused")}).Status(context.Background())
	if ok {
		t.Fatalf("expected unhealthy")
	}
	if payload["error"] != "connection refused" {
		t.Fatalf("unexpected error field: %v", payload["error"])
	}
}
