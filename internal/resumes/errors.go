package resumes

import "errors"

var (
	ErrNotFound         = errors.New("resume not found")
	ErrMalformedInput   = errors.New("malformed input")
	ErrExtractionFailed = errors.New("extraction failed")
	ErrNoArchive        = errors.New("no archived upload")
)
