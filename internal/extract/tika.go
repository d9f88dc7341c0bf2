package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTikaTimeout = 60 * time.Second
	maxTikaResponse    = 8 << 20
)

// Tika extracts text through an Apache Tika server. Tika accepts far more
// formats than Primary and, with its Tesseract parser enabled, OCRs scanned
// pages, which makes it the tolerant fallback tier.
type Tika struct {
	ServerURL string
	// OCRStrategy is sent as X-Tika-PDFOcrStrategy when set (auto, ocr_only, ocr_and_text_extraction, no_ocr).
	OCRStrategy string
	Client      *http.Client
}

// TikaOption configures a Tika extractor.
type TikaOption func(*Tika)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) TikaOption {
	return func(t *Tika) {
		if timeout > 0 {
			t.Client.Timeout = timeout
		}
	}
}

// WithOCRStrategy sets the PDF OCR strategy header.
func WithOCRStrategy(strategy string) TikaOption {
	return func(t *Tika) {
		t.OCRStrategy = strings.TrimSpace(strategy)
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) TikaOption {
	return func(t *Tika) {
		if client != nil {
			t.Client = client
		}
	}
}

// NewTika builds a Tika extractor for serverURL (e.g. http://localhost:9998).
func NewTika(serverURL string, opts ...TikaOption) *Tika {
	t := &Tika{
		ServerURL:   strings.TrimRight(strings.TrimSpace(serverURL), "/"),
		OCRStrategy: "auto",
		Client:      &http.Client{Timeout: defaultTikaTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Extract implements Extractor by PUTting the document to /tika.
func (t *Tika) Extract(ctx context.Context, data []byte, fileName string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, t.ServerURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("tika: build request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", DetectMimeType(data, fileName))
	if fileName != "" {
		req.Header.Set("X-Tika-Resource-Name", fileName)
	}
	if t.OCRStrategy != "" {
		req.Header.Set("X-Tika-PDFOcrStrategy", t.OCRStrategy)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tika: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("tika: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTikaResponse))
	if err != nil {
		return "", fmt.Errorf("tika: read response: %w", err)
	}
	return string(body), nil
}
