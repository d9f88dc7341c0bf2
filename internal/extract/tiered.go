package extract

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"resume-screener/internal/shared/telemetry"
)

// DefaultMinChars is the confidence threshold: text shorter than this after
// trimming sends extraction to the fallback tier.
const DefaultMinChars = 100

// Source tags which tier produced the text.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceFailed   Source = "failed"
)

// Result is the outcome of two-tier extraction. Text is empty unless Source
// is SourcePrimary or SourceFallback.
type Result struct {
	Text   string
	Source Source
}

// OK reports whether usable text was extracted.
func (r Result) OK() bool {
	return r.Source == SourcePrimary || r.Source == SourceFallback
}

// TwoTier runs the primary extractor and, when its output is missing or too
// short, the fallback. Backend errors never escape; they become a Failed result.
type TwoTier struct {
	Primary  Extractor
	Fallback Extractor
	MinChars int
}

// NewTwoTier wires primary and fallback with the given threshold. A
// non-positive minChars selects DefaultMinChars. fallback may be nil.
func NewTwoTier(primary, fallback Extractor, minChars int) *TwoTier {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &TwoTier{Primary: primary, Fallback: fallback, MinChars: minChars}
}

// Extract implements the tiered contract.
func (t *TwoTier) Extract(ctx context.Context, data []byte, fileName string) Result {
	if text, ok := t.attempt(ctx, SourcePrimary, t.Primary, data, fileName); ok {
		return Result{Text: text, Source: SourcePrimary}
	}
	if text, ok := t.attempt(ctx, SourceFallback, t.Fallback, data, fileName); ok {
		return Result{Text: text, Source: SourceFallback}
	}
	return Result{Source: SourceFailed}
}

func (t *TwoTier) attempt(ctx context.Context, tier Source, ex Extractor, data []byte, fileName string) (string, bool) {
	if ex == nil {
		return "", false
	}
	start := time.Now()
	raw, err := ex.Extract(ctx, data, fileName)
	fields := map[string]any{
		"tier":        string(tier),
		"file_name":   fileName,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	}
	if err != nil {
		fields["error"] = err
		telemetry.Warn("extract.tier_failed", fields)
		return "", false
	}
	text := strings.TrimSpace(raw)
	chars := utf8.RuneCountInString(text)
	fields["chars"] = chars
	if chars < t.minChars() {
		fields["min_chars"] = t.minChars()
		telemetry.Info("extract.below_threshold", fields)
		return "", false
	}
	telemetry.Debug("extract.tier_ok", fields)
	return text, true
}

func (t *TwoTier) minChars() int {
	if t.MinChars <= 0 {
		return DefaultMinChars
	}
	return t.MinChars
}
