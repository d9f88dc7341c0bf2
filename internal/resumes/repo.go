package resumes

import "context"

// Repo defines persistence for resumes.
type Repo interface {
	// Create assigns the record ID and stores the resume.
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByID(ctx context.Context, id string) (Resume, error)
	// List returns resumes newest first.
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	// UpdateAnnotations overwrites notes and tags.
	UpdateAnnotations(ctx context.Context, id, notes string, tags []string) (Resume, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, topSkills int) (Summary, error)
}
