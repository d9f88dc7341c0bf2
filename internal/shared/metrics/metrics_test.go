package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot: count=%d sum=%v", snap.count, snap.sum)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "h", "help", snap)
	out := buf.String()
	for _, want := range []string{
		`h_bucket{le="10"} 1`,
		`h_bucket{le="100"} 2`,
		`h_bucket{le="+Inf"} 3`,
		`h_sum 555`,
		`h_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHandlerExposesIngestCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncIngestStarted()
	IncExtractionFallback()
	ObserveIngestDurationMs(-1)

	r := gin.New()
	r.GET("/metrics", Handler())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	body := rec.Body.String()
	for _, name := range []string{
		"# TYPE resume_ingest_started_total counter",
		"# TYPE resume_ingest_completed_total counter",
		"# TYPE resume_ingest_failed_total counter",
		"# TYPE resume_extraction_fallback_total counter",
		"# TYPE resume_ingest_duration_ms histogram",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %q in output:\n%s", name, body)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	if got := formatFloat(250); got != "250" {
		t.Fatalf("formatFloat(250) = %q", got)
	}
	if got := formatFloat(1.5); got != "1.5" {
		t.Fatalf("formatFloat(1.5) = %q", got)
	}
}
