package screening

import (
	"regexp"
	"strings"
)

const nameScanLines = 10

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// Indian mobile numbers first, then NANP-style groups.
	phoneRe     = regexp.MustCompile(`(?:\+91[-\s]?|0)?[789]\d{9}|\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	nameNoiseRe = regexp.MustCompile(`(?i)@|[0-9]{3,}|linkedin\.com|github\.com`)
	nameShapeRe = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)+$`)
)

// Fields holds contact details and skills pulled from resume text. Empty
// strings mean the field was not found.
type Fields struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Skills []string `json:"skills"`
}

// ExtractFields runs every field extractor over text. It never fails; an
// empty input yields empty fields and an empty skill list.
func (v *Vocabulary) ExtractFields(text string) Fields {
	return Fields{
		Name:   ExtractName(text),
		Email:  ExtractEmail(text),
		Phone:  ExtractPhone(text),
		Skills: v.ExtractSkills(text),
	}
}

// ExtractEmail returns the first email-shaped substring.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractPhone returns the first phone-shaped substring.
func ExtractPhone(text string) string {
	return phoneRe.FindString(text)
}

// ExtractName returns the first title-cased line among the first ten
// non-empty lines that carries no contact noise.
func ExtractName(text string) string {
	checked := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if checked == nameScanLines {
			break
		}
		checked++
		if isNameCandidate(line) {
			return line
		}
	}
	return ""
}

func isNameCandidate(line string) bool {
	if nameNoiseRe.MatchString(line) {
		return false
	}
	if len(strings.Fields(line)) > 4 {
		return false
	}
	return nameShapeRe.MatchString(line)
}

// ExtractSkills returns the vocabulary skills present in text, in vocabulary
// order and canonical casing. The result is never nil.
func (v *Vocabulary) ExtractSkills(text string) []string {
	found := make([]string, 0, len(v.skills))
	seen := make(map[string]struct{}, len(v.skills))
	for _, s := range v.skills {
		if !s.re.MatchString(text) {
			continue
		}
		if _, dup := seen[s.name]; dup {
			continue
		}
		seen[s.name] = struct{}{}
		found = append(found, s.name)
	}
	return found
}
