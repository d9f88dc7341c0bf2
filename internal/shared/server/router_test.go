package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/extract"
	"resume-screener/internal/resumes"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/config"
)

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != `{"ok":true,"storage":"memory"}` {
		t.Fatalf("unexpected health response %d %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "resume_ingest_started_total") {
		t.Fatalf("unexpected metrics response %d", resp.Code)
	}
}

func TestParseRouteIsRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &resumes.Service{
		Extractor:  extract.NewTwoTier(extract.Primary{}, nil, 10),
		Vocabulary: screening.DefaultVocabulary(),
		Repo:       resumes.NewMemoryRepo(),
	}
	r := NewRouter(RouterDeps{
		Config:        config.Config{Env: "dev", ParseRateLimitRPS: 0.001, ParseRateLimitBurst: 1},
		ResumeHandler: resumes.NewHandler(svc, 0),
	})

	upload := func() int {
		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)
		fw, _ := w.CreateFormFile("resume", "cv.txt")
		_, _ = fw.Write([]byte("Jane Doe\njane@example.com\nBackend developer, Python, 5 years"))
		_ = w.Close()
		req := httptest.NewRequest(http.MethodPost, "/api/resume/parse", body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := upload(); code != http.StatusCreated {
		t.Fatalf("expected first upload 201, got %d", code)
	}
	if code := upload(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second upload 429, got %d", code)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume/all", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected list not to be rate limited, got %d", resp.Code)
	}
}
