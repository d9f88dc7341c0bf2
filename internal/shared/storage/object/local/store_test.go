package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-screener/internal/shared/storage/object"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return &Store{baseDir: t.TempDir(), now: func() time.Time { return time.UnixMilli(42) }}
}

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	key, size, err := store.Save(context.Background(), "cv.txt", "text/plain", strings.NewReader("hello resume"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key != "uploads/42-cv.txt" {
		t.Fatalf("unexpected key: %s", key)
	}
	if size != int64(len("hello resume")) {
		t.Fatalf("unexpected size: %d", size)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, []byte("hello resume")) {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestDeleteRemovesUpload(t *testing.T) {
	store := newTestStore(t)
	key, _, err := store.Save(context.Background(), "cv.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Delete(context.Background(), key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.baseDir, filepath.FromSlash(key))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file to be gone, stat err=%v", err)
	}
	if _, err := store.Open(context.Background(), key); !errors.Is(err, object.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := store.Delete(context.Background(), key); err != nil {
		t.Fatalf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../secret"); err == nil {
		t.Fatalf("expected traversal to be rejected by Open")
	}
	if err := store.Delete(context.Background(), "../secret"); err == nil {
		t.Fatalf("expected traversal to be rejected by Delete")
	}
}
