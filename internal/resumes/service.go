package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/shared/util"
)

// TopSkillsLimit is the number of skills reported by Summary.
const TopSkillsLimit = 5

// TextExtractor produces a tagged extraction result. Implementations never
// return backend errors; a failure is reported as extract.SourceFailed.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName string) extract.Result
}

// Service runs the ingestion pipeline and manages stored resumes.
type Service struct {
	Extractor  TextExtractor
	Vocabulary *screening.Vocabulary
	Repo       Repo
	// Store archives raw uploads when set.
	Store object.ObjectStore
	Now   func() time.Time
}

// Ingest takes one upload through extraction, screening, optional archiving
// and persistence. It returns ErrMalformedInput, ErrExtractionFailed or an
// internal error; no record is stored unless it returns nil.
func (s *Service) Ingest(ctx context.Context, doc RawDocument) (Resume, error) {
	fileName := strings.TrimSpace(doc.FileName)
	if fileName == "" || len(doc.Data) == 0 {
		return Resume{}, ErrMalformedInput
	}

	start := s.now()
	checksum := util.Checksum(doc.Data)
	p := &pipeline{fileName: fileName, checksum: checksum, state: StatusReceived}
	metrics.IncIngestStarted()
	defer func() {
		metrics.ObserveIngestDurationMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)
	}()

	p.advance(StatusExtracting, nil)
	result := s.Extractor.Extract(ctx, doc.Data, fileName)
	if !result.OK() {
		p.advance(StatusExtractionFailed, nil)
		metrics.IncIngestFailed()
		return Resume{}, ErrExtractionFailed
	}
	if result.Source == extract.SourceFallback {
		metrics.IncExtractionFallback()
	}
	p.advance(StatusTextReady, map[string]any{
		"extraction_source": string(result.Source),
		"chars":             len([]rune(result.Text)),
	})

	p.advance(StatusClassifying, nil)
	fields := s.Vocabulary.ExtractFields(result.Text)
	cls := s.Vocabulary.Classify(result.Text, fields.Skills)

	p.advance(StatusAssembling, nil)
	rec := screening.Assemble(fileName, result.Text, fields, cls, s.now())
	res := Resume{
		Record:           rec,
		ExtractionSource: result.Source,
		Checksum:         checksum,
		MimeType:         extract.DetectMimeType(doc.Data, fileName),
	}
	p.advance(StatusAssembled, map[string]any{
		"job_title":        cls.JobTitle,
		"experience_level": string(cls.ExperienceLevel),
		"skills":           len(rec.Skills),
	})

	if s.Store != nil {
		key, size, err := s.Store.Save(ctx, fileName, res.MimeType, bytes.NewReader(doc.Data))
		if err != nil {
			p.fail(err)
			return Resume{}, fmt.Errorf("archive upload: %w", err)
		}
		if size != int64(len(doc.Data)) {
			s.discardArchive(ctx, key)
			err := fmt.Errorf("short write: %d of %d bytes", size, len(doc.Data))
			p.fail(err)
			return Resume{}, fmt.Errorf("archive upload: %w", err)
		}
		res.StorageKey = key
	}

	saved, err := s.Repo.Create(ctx, res)
	if err != nil {
		s.discardArchive(ctx, res.StorageKey)
		p.fail(err)
		return Resume{}, fmt.Errorf("persist resume: %w", err)
	}
	p.resumeID = saved.ID
	p.advance(StatusPersisted, nil)
	metrics.IncIngestCompleted()
	return saved, nil
}

// Get returns a stored resume.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored resumes newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, limit, offset)
}

// UpdateAnnotations overwrites a resume's notes and tags.
func (s *Service) UpdateAnnotations(ctx context.Context, id, notes string, tags []string) (Resume, error) {
	if tags == nil {
		tags = []string{}
	}
	return s.Repo.UpdateAnnotations(ctx, id, notes, tags)
}

// Delete removes a stored resume and its archived upload.
func (s *Service) Delete(ctx context.Context, id string) error {
	res, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discardArchive(ctx, res.StorageKey)
	telemetry.Info("resume.deleted", map[string]any{"resume_id": id, "storage_key": res.StorageKey})
	return nil
}

// OpenUpload streams the archived original of a resume. It returns
// ErrNoArchive when the resume was stored without one.
func (s *Service) OpenUpload(ctx context.Context, id string) (Resume, io.ReadCloser, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return Resume{}, nil, err
	}
	if s.Store == nil || res.StorageKey == "" {
		return Resume{}, nil, ErrNoArchive
	}
	rc, err := s.Store.Open(ctx, res.StorageKey)
	if errors.Is(err, object.ErrObjectNotFound) {
		return Resume{}, nil, ErrNoArchive
	}
	if err != nil {
		return Resume{}, nil, fmt.Errorf("open upload %s: %w", res.StorageKey, err)
	}
	return res, rc, nil
}

// Summary aggregates stored resumes.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.Repo.Summary(ctx, TopSkillsLimit)
}

// discardArchive removes an archived upload that no record points to.
// Failures are logged; the orphan is left for manual cleanup.
func (s *Service) discardArchive(ctx context.Context, key string) {
	if s.Store == nil || key == "" {
		return
	}
	if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil {
		telemetry.Error("resume.archive_cleanup_failed", map[string]any{"storage_key": key, "error": err})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// pipeline tracks the state of one ingest run.
type pipeline struct {
	fileName string
	checksum string
	resumeID string
	state    Status
}

func (p *pipeline) advance(to Status, extra map[string]any) {
	fields := map[string]any{
		"file_name":         p.fileName,
		"checksum":          p.checksum,
		"status":            string(to),
		"status_transition": string(p.state) + "->" + string(to),
	}
	if p.resumeID != "" {
		fields["resume_id"] = p.resumeID
	}
	for k, v := range extra {
		fields[k] = v
	}
	p.state = to
	switch to {
	case StatusFailed:
		telemetry.Error("resume.status", fields)
	case StatusExtractionFailed:
		telemetry.Warn("resume.status", fields)
	default:
		telemetry.Info("resume.status", fields)
	}
}

func (p *pipeline) fail(err error) {
	metrics.IncIngestFailed()
	p.advance(StatusFailed, map[string]any{"error": err})
}
