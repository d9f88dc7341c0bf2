package screening

import (
	"fmt"
	"regexp"
	"strings"
)

// Level is the experience bucket inferred from resume text.
type Level string

const (
	LevelFresher   Level = "Fresher"
	LevelJunior    Level = "Junior"
	LevelMidSenior Level = "Mid/Senior"
	LevelUnknown   Level = "Unknown"
)

// DefaultJobTitle is used when no "<role> developer" phrase is present.
const DefaultJobTitle = "Software Developer"

// Classification is the heuristic recommendation for a resume.
type Classification struct {
	JobTitle        string `json:"jobTitle"`
	ExperienceLevel Level  `json:"experienceLevel"`
	Summary         string `json:"summary"`
}

type levelRule struct {
	re    *regexp.Regexp
	level Level
}

// levelRules are evaluated in order; the first match wins.
var levelRules = []levelRule{
	{re: regexp.MustCompile(`(?i)\b0[-–]1\b|\bfresher\b`), level: LevelFresher},
	{re: regexp.MustCompile(`(?i)\b[1-3]\b.*years?`), level: LevelJunior},
	{re: regexp.MustCompile(`(?i)\b[4-9]\b.*years?|\b\d{2,}\b.*months?`), level: LevelMidSenior},
}

// Classify infers job title, experience level and summary. It never fails.
func (v *Vocabulary) Classify(text string, skills []string) Classification {
	title := v.JobTitle(text)
	level := ExperienceLevel(text)
	return Classification{
		JobTitle:        title,
		ExperienceLevel: level,
		Summary:         Summary(title, level, skills),
	}
}

// JobTitle returns "<Role> Developer" for the leftmost role phrase in text.
func (v *Vocabulary) JobTitle(text string) string {
	m := v.roleRe.FindStringSubmatchIndex(text)
	if m == nil {
		return DefaultJobTitle
	}
	for i := range v.roles {
		if m[2*(i+1)] >= 0 {
			return v.roles[i].Label + " Developer"
		}
	}
	return DefaultJobTitle
}

// ExperienceLevel applies the level rules in precedence order.
func ExperienceLevel(text string) Level {
	for _, rule := range levelRules {
		if rule.re.MatchString(text) {
			return rule.level
		}
	}
	return LevelUnknown
}

// Summary renders the recommendation sentence.
func Summary(jobTitle string, level Level, skills []string) string {
	return fmt.Sprintf("Recommended for %s role with %s experience based on skills: %s.",
		jobTitle, level, strings.Join(skills, ", "))
}
