package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, file_name, name, email, phone, skills, preview, job_title, experience_level, summary, ` +
	`tags, notes, extraction_source, checksum, mime_type, storage_key, uploaded_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new resume with a generated ID.
func (r *PGRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
	id, file_name, name, email, phone, skills, preview, job_title, experience_level, summary,
	tags, notes, extraction_source, checksum, mime_type, storage_key, uploaded_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	skills, err := marshalJSONB(res.Skills)
	if err != nil {
		return Resume{}, err
	}
	tags, err := marshalJSONB(res.Tags)
	if err != nil {
		return Resume{}, err
	}
	res.ID = uuid.NewString()
	_, err = r.DB.ExecContext(ctx, query,
		res.ID,
		res.FileName,
		res.Name,
		res.Email,
		res.Phone,
		skills,
		res.Preview,
		res.Classification.JobTitle,
		string(res.Classification.ExperienceLevel),
		res.Classification.Summary,
		tags,
		res.Notes,
		string(res.ExtractionSource),
		res.Checksum,
		res.MimeType,
		nullString(res.StorageKey),
		res.UploadedAt,
	)
	if err != nil {
		return Resume{}, fmt.Errorf("insert resume: %w", err)
	}
	return res, nil
}

// GetByID returns a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// List returns resumes newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY uploaded_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAnnotations overwrites notes and tags and returns the updated row.
func (r *PGRepo) UpdateAnnotations(ctx context.Context, id, notes string, tags []string) (Resume, error) {
	payload, err := marshalJSONB(tags)
	if err != nil {
		return Resume{}, err
	}
	query := `UPDATE resumes SET notes = $2, tags = $3 WHERE id = $1 RETURNING ` + resumeColumns
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id, notes, payload))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// Delete removes a resume.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary runs the count, top-skills and experience aggregates concurrently.
func (r *PGRepo) Summary(ctx context.Context, topSkills int) (Summary, error) {
	var out Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.DB.QueryRowContext(gctx, `SELECT COUNT(*) FROM resumes`).Scan(&out.TotalCount)
	})

	g.Go(func() error {
		const query = `
SELECT skill, COUNT(*) AS n
FROM resumes, jsonb_array_elements_text(skills) AS skill
GROUP BY skill
ORDER BY n DESC, skill ASC
LIMIT $1`
		rows, err := r.DB.QueryContext(gctx, query, topSkills)
		if err != nil {
			return fmt.Errorf("top skills: %w", err)
		}
		defer rows.Close()
		skills := []SkillCount{}
		for rows.Next() {
			var sc SkillCount
			if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
				return err
			}
			skills = append(skills, sc)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		out.TopSkills = skills
		return nil
	})

	g.Go(func() error {
		const query = `
SELECT experience_level, COUNT(*) AS n
FROM resumes
GROUP BY experience_level
ORDER BY n DESC, experience_level ASC`
		rows, err := r.DB.QueryContext(gctx, query)
		if err != nil {
			return fmt.Errorf("experience breakdown: %w", err)
		}
		defer rows.Close()
		levels := []ExperienceCount{}
		for rows.Next() {
			var ec ExperienceCount
			if err := rows.Scan(&ec.ExperienceLevel, &ec.Count); err != nil {
				return err
			}
			levels = append(levels, ec)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		out.ByExperience = levels
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var skills, tags []byte
	var level, source string
	var storageKey sql.NullString
	err := row.Scan(
		&res.ID,
		&res.FileName,
		&res.Name,
		&res.Email,
		&res.Phone,
		&skills,
		&res.Preview,
		&res.Classification.JobTitle,
		&level,
		&res.Classification.Summary,
		&tags,
		&res.Notes,
		&source,
		&res.Checksum,
		&res.MimeType,
		&storageKey,
		&res.UploadedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	res.Classification.ExperienceLevel = screening.Level(level)
	res.ExtractionSource = extract.Source(source)
	if storageKey.Valid {
		res.StorageKey = storageKey.String
	}
	res.Skills = unmarshalStrings(skills)
	res.Tags = unmarshalStrings(tags)
	res.UploadedAt = res.UploadedAt.UTC()
	return res, nil
}

func marshalJSONB(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
