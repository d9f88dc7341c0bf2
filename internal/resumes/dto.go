package resumes

import "resume-screener/internal/screening"

const notFound = "Not found"

// ExtractedResponse is the caller-facing projection of a screened resume.
type ExtractedResponse struct {
	Name        string                   `json:"name"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone"`
	Skills      []string                 `json:"skills"`
	Preview     string                   `json:"preview"`
	Suggestions screening.Classification `json:"suggestions"`
	Tags        []string                 `json:"tags"`
}

// ParseResponse is returned by POST /parse.
type ParseResponse struct {
	Success          bool              `json:"success"`
	ID               string            `json:"id"`
	ExtractionSource string            `json:"extractionSource"`
	Extracted        ExtractedResponse `json:"extracted"`
}

type updateRequest struct {
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

// Project builds the caller projection, substituting "Not found" for absent fields.
func Project(rec screening.Record) ExtractedResponse {
	skills := rec.Skills
	if len(skills) == 0 {
		skills = []string{notFound}
	}
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return ExtractedResponse{
		Name:        orNotFound(rec.Name),
		Email:       orNotFound(rec.Email),
		Phone:       orNotFound(rec.Phone),
		Skills:      skills,
		Preview:     rec.Preview,
		Suggestions: rec.Classification,
		Tags:        tags,
	}
}

func toParseResponse(res Resume) ParseResponse {
	return ParseResponse{
		Success:          true,
		ID:               res.ID,
		ExtractionSource: string(res.ExtractionSource),
		Extracted:        Project(res.Record),
	}
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}
