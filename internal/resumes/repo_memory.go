package resumes

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Resume
	newID func() string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Resume),
		newID: uuid.NewString,
	}
}

// Create stores a copy of the resume under a fresh ID.
func (r *MemoryRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res.ID = r.newID()
	res.Skills = cloneStrings(res.Skills)
	res.Tags = cloneStrings(res.Tags)
	r.data[res.ID] = res
	return res, nil
}

// GetByID returns a resume by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

// List returns resumes newest first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Resume, 0, len(r.data))
	for _, res := range r.data {
		out = append(out, res)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	if offset > len(out) {
		return []Resume{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// UpdateAnnotations overwrites notes and tags.
func (r *MemoryRepo) UpdateAnnotations(ctx context.Context, id, notes string, tags []string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	res.Notes = notes
	res.Tags = cloneStrings(tags)
	r.data[id] = res
	return res, nil
}

// Delete removes a resume.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// Summary counts records, skills and experience levels.
func (r *MemoryRepo) Summary(ctx context.Context, topSkills int) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	skillCounts := map[string]int{}
	levelCounts := map[string]int{}
	total := len(r.data)
	for _, res := range r.data {
		for _, s := range res.Skills {
			skillCounts[s]++
		}
		levelCounts[string(res.Classification.ExperienceLevel)]++
	}
	r.mu.RUnlock()

	skills := make([]SkillCount, 0, len(skillCounts))
	for s, n := range skillCounts {
		skills = append(skills, SkillCount{Skill: s, Count: n})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Count != skills[j].Count {
			return skills[i].Count > skills[j].Count
		}
		return skills[i].Skill < skills[j].Skill
	})
	if topSkills > 0 && len(skills) > topSkills {
		skills = skills[:topSkills]
	}

	levels := make([]ExperienceCount, 0, len(levelCounts))
	for l, n := range levelCounts {
		levels = append(levels, ExperienceCount{ExperienceLevel: l, Count: n})
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Count != levels[j].Count {
			return levels[i].Count > levels[j].Count
		}
		return levels[i].ExperienceLevel < levels[j].ExperienceLevel
	})

	return Summary{TotalCount: total, TopSkills: skills, ByExperience: levels}, nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
