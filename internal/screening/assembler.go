package screening

import (
	"regexp"
	"strings"
	"time"
)

// PreviewChars is the length of the stored text excerpt.
const PreviewChars = 500

var whitespaceRe = regexp.MustCompile(`\s+`)

// Record is the assembled screening result for one document, ready to hand
// to persistence. It carries no identifier; storage assigns one.
type Record struct {
	FileName       string         `json:"fileName"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Skills         []string       `json:"skills"`
	Preview        string         `json:"preview"`
	Classification Classification `json:"suggestions"`
	Tags           []string       `json:"tags"`
	Notes          string         `json:"notes"`
	UploadedAt     time.Time      `json:"uploadedAt"`
}

// Assemble combines extracted fields and classification into a Record.
func Assemble(fileName, text string, fields Fields, cls Classification, now time.Time) Record {
	skills := fields.Skills
	if skills == nil {
		skills = []string{}
	}
	return Record{
		FileName:       fileName,
		Name:           fields.Name,
		Email:          fields.Email,
		Phone:          fields.Phone,
		Skills:         skills,
		Preview:        Preview(text),
		Classification: cls,
		Tags:           Tags(skills, cls),
		Notes:          "",
		UploadedAt:     now.UTC(),
	}
}

// Preview returns the first PreviewChars characters of text. It may cut a
// word in half.
func Preview(text string) string {
	n := 0
	for i := range text {
		if n == PreviewChars {
			return text[:i]
		}
		n++
	}
	return text
}

// Tags derives lower-cased labels from skills, experience level and job title.
// Duplicates across the three groups are kept.
func Tags(skills []string, cls Classification) []string {
	tags := make([]string, 0, len(skills)+2)
	for _, s := range skills {
		tags = append(tags, strings.ToLower(s))
	}
	tags = append(tags, strings.ToLower(string(cls.ExperienceLevel)))
	tags = append(tags, strings.ToLower(whitespaceRe.ReplaceAllString(cls.JobTitle, "-")))
	return tags
}

// Screen runs field extraction, classification and assembly over text.
func (v *Vocabulary) Screen(fileName, text string, now time.Time) Record {
	fields := v.ExtractFields(text)
	cls := v.Classify(text, fields.Skills)
	return Assemble(fileName, text, fields, cls, now)
}
