package extract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTikaExtract(t *testing.T) {
	var gotMethod, gotPath, gotAccept, gotName, gotOCR string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotName = r.Header.Get("X-Tika-Resource-Name")
		gotOCR = r.Header.Get("X-Tika-PDFOcrStrategy")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("scanned text"))
	}))
	defer srv.Close()

	tika := NewTika(srv.URL+"/", WithOCRStrategy("ocr_only"), WithTimeout(time.Second))
	text, err := tika.Extract(context.Background(), []byte("%PDF-1.4"), "scan.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "scanned text" {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotMethod != http.MethodPut || gotPath != "/tika" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotAccept != "text/plain" {
		t.Fatalf("unexpected accept: %q", gotAccept)
	}
	if gotName != "scan.pdf" {
		t.Fatalf("unexpected resource name: %q", gotName)
	}
	if gotOCR != "ocr_only" {
		t.Fatalf("unexpected ocr strategy: %q", gotOCR)
	}
	if string(gotBody) != "%PDF-1.4" {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestTikaExtract_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "parse failure", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	if _, err := NewTika(srv.URL).Extract(context.Background(), []byte("x"), "x.pdf"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestTikaExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewTika(url).Extract(context.Background(), []byte("x"), "x.pdf"); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
