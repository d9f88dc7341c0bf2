package resumes

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/storage/object"
)

const scenarioAText = "John Smith\njohn.smith@mail.com\n9876543210\nSkills: Java, React\n3 years experience"

type fakeExtractor struct {
	result extract.Result
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte, fileName string) extract.Result {
	f.calls++
	return f.result
}

type fakeStore struct {
	saved        map[string][]byte
	contentTypes map[string]string
	deleted      []string
	err          error
}

func (f *fakeStore) Save(ctx context.Context, fileName, contentType string, r io.Reader) (string, int64, error) {
	if f.err != nil {
		return "", 0, f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	key := "uploads/1-" + fileName
	if f.saved == nil {
		f.saved = map[string][]byte{}
		f.contentTypes = map[string]string{}
	}
	f.saved[key] = data
	f.contentTypes[key] = contentType
	return key, int64(len(data)), nil
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := f.saved[storageKey]
	if !ok {
		return nil, object.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (f *fakeStore) Delete(ctx context.Context, storageKey string) error {
	f.deleted = append(f.deleted, storageKey)
	delete(f.saved, storageKey)
	return nil
}

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Create(ctx context.Context, r Resume) (Resume, error) {
	return Resume{}, errors.New("db down")
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func newTestService(ex TextExtractor, repo Repo) *Service {
	return &Service{
		Extractor:  ex,
		Vocabulary: screening.DefaultVocabulary(),
		Repo:       repo,
		Now:        fixedNow,
	}
}
