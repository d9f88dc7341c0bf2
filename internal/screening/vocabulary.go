package screening

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSkills is the controlled vocabulary used when no vocabulary file is configured.
var DefaultSkills = []string{
	"Java", "JavaScript", "React", "Node.js", "Python", "HTML", "CSS", "MongoDB",
	"Express", "SQL", "Git", "Docker", "AWS", "Azure", "REST", "Redux",
}

// Role maps a keyword pattern that precedes "developer" to a job-title label.
type Role struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// DefaultRoles lists the role keywords in match priority order.
var DefaultRoles = []Role{
	{Label: "Frontend", Pattern: "frontend"},
	{Label: "Backend", Pattern: "backend"},
	{Label: "Full-Stack", Pattern: "full[- ]?stack"},
	{Label: "Data Analyst", Pattern: "data analyst"},
	{Label: "Machine Learning", Pattern: "machine learning"},
	{Label: "DevOps", Pattern: "devops"},
	{Label: "Software", Pattern: "software"},
	{Label: "Java", Pattern: "java"},
	{Label: "React", Pattern: "react"},
}

var ErrInvalidVocabulary = errors.New("invalid vocabulary")

type skillMatcher struct {
	name string
	re   *regexp.Regexp
}

// Vocabulary is the immutable skill list and role-keyword table shared by
// every pipeline run. Build it once at startup and pass it by reference.
type Vocabulary struct {
	skills []skillMatcher
	roles  []Role
	roleRe *regexp.Regexp
}

// VocabularyFile is the YAML layout accepted by LoadVocabulary.
type VocabularyFile struct {
	Skills []string `yaml:"skills"`
	Roles  []Role   `yaml:"roles"`
}

// DefaultVocabulary builds the vocabulary from DefaultSkills and DefaultRoles.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultSkills, DefaultRoles)
	if err != nil {
		panic(fmt.Sprintf("default vocabulary: %v", err))
	}
	return v
}

// NewVocabulary compiles skills and roles. Duplicate skills (case-insensitive)
// keep their first spelling.
func NewVocabulary(skills []string, roles []Role) (*Vocabulary, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: at least one role is required", ErrInvalidVocabulary)
	}

	v := &Vocabulary{}
	seen := make(map[string]struct{}, len(skills))
	for _, raw := range skills {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		re, err := regexp.Compile("(?i)" + wholeWord(name))
		if err != nil {
			return nil, fmt.Errorf("%w: skill %q: %v", ErrInvalidVocabulary, name, err)
		}
		v.skills = append(v.skills, skillMatcher{name: name, re: re})
	}

	groups := make([]string, 0, len(roles))
	for _, role := range roles {
		label := strings.TrimSpace(role.Label)
		pattern := strings.TrimSpace(role.Pattern)
		if label == "" || pattern == "" {
			return nil, fmt.Errorf("%w: role needs label and pattern", ErrInvalidVocabulary)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("%w: role %q: %v", ErrInvalidVocabulary, label, err)
		}
		v.roles = append(v.roles, Role{Label: label, Pattern: pattern})
		groups = append(groups, "("+pattern+")")
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(groups, "|") + `)[-\s]?\bdeveloper`)
	if err != nil {
		return nil, fmt.Errorf("%w: roles: %v", ErrInvalidVocabulary, err)
	}
	// Role patterns must not add capture groups of their own; the group index
	// identifies the role.
	if re.NumSubexp() != len(v.roles) {
		return nil, fmt.Errorf("%w: role patterns must not contain capture groups", ErrInvalidVocabulary)
	}
	v.roleRe = re
	return v, nil
}

// LoadVocabulary reads a YAML vocabulary file. Missing sections fall back to
// the defaults.
func LoadVocabulary(path string) (*Vocabulary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	var file VocabularyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidVocabulary, path, err)
	}
	skills := file.Skills
	if len(skills) == 0 {
		skills = DefaultSkills
	}
	roles := file.Roles
	if len(roles) == 0 {
		roles = DefaultRoles
	}
	return NewVocabulary(skills, roles)
}

// Skills returns a copy of the canonical skill names in vocabulary order.
func (v *Vocabulary) Skills() []string {
	out := make([]string, len(v.skills))
	for i, s := range v.skills {
		out[i] = s.name
	}
	return out
}

// Roles returns a copy of the role table.
func (v *Vocabulary) Roles() []Role {
	return append([]Role(nil), v.roles...)
}

// Contains reports whether name is a vocabulary skill, case-insensitively.
func (v *Vocabulary) Contains(name string) bool {
	for _, s := range v.skills {
		if strings.EqualFold(s.name, name) {
			return true
		}
	}
	return false
}

// wholeWord anchors a literal on word boundaries. Edges that are not word
// characters (the "+" in "C++") get no boundary, since \b would never match there.
func wholeWord(literal string) string {
	pattern := regexp.QuoteMeta(literal)
	if isWordByte(literal[0]) {
		pattern = `\b` + pattern
	}
	if isWordByte(literal[len(literal)-1]) {
		pattern += `\b`
	}
	return pattern
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
