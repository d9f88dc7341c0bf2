package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyScenarioA(t *testing.T) {
	v := DefaultVocabulary()

	got := v.Classify(scenarioA, []string{"Java", "React"})

	assert.Equal(t, "Software Developer", got.JobTitle)
	assert.Equal(t, LevelJunior, got.ExperienceLevel)
	assert.Equal(t, "Recommended for Software Developer role with Junior experience based on skills: Java, React.", got.Summary)
}

func TestClassifyScenarioB(t *testing.T) {
	v := DefaultVocabulary()

	got := v.Classify("frontend developer with 0-1 years, fresher", nil)

	assert.Equal(t, "Frontend Developer", got.JobTitle)
	assert.Equal(t, LevelFresher, got.ExperienceLevel)
}

func TestClassifyEmptyText(t *testing.T) {
	v := DefaultVocabulary()

	got := v.Classify("", []string{})

	assert.Equal(t, DefaultJobTitle, got.JobTitle)
	assert.Equal(t, LevelUnknown, got.ExperienceLevel)
	assert.Equal(t, "Recommended for Software Developer role with Unknown experience based on skills: .", got.Summary)
}

func TestJobTitle(t *testing.T) {
	v := DefaultVocabulary()
	tests := []struct {
		text string
		want string
	}{
		{text: "Senior BACKEND Developer at Acme", want: "Backend Developer"},
		{text: "full-stack developer", want: "Full-Stack Developer"},
		{text: "Fullstack developer", want: "Full-Stack Developer"},
		{text: "full stack developer", want: "Full-Stack Developer"},
		{text: "aspiring data analyst developer", want: "Data Analyst Developer"},
		{text: "Machine Learning developer", want: "Machine Learning Developer"},
		{text: "devops-developer", want: "DevOps Developer"},
		{text: "Java developer and React developer", want: "Java Developer"},
		{text: "react developer then java developer", want: "React Developer"},
		{text: "javascript developer", want: "Software Developer"},
		{text: "developer relations", want: "Software Developer"},
		{text: "frontend engineer", want: "Software Developer"},
		{text: "frontenddeveloper", want: "Software Developer"},
		{text: "backenddeveloper or frontend developer", want: "Frontend Developer"},
		{text: "backend\tdeveloper", want: "Backend Developer"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, v.JobTitle(tt.text))
		})
	}
}

func TestExperienceLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{name: "zero to one", text: "0-1 years of experience", want: LevelFresher},
		{name: "en dash", text: "0–1 yrs", want: LevelFresher},
		{name: "fresher word", text: "I am a Fresher", want: LevelFresher},
		{name: "fresher beats senior years", text: "0-1 years internship, 5 years hobby", want: LevelFresher},
		{name: "junior", text: "2 years at Acme", want: LevelJunior},
		{name: "junior singular", text: "1 year", want: LevelJunior},
		{name: "junior before mid", text: "3 years backend, 7 years total", want: LevelJunior},
		{name: "mid senior years", text: "5 years of Go", want: LevelMidSenior},
		{name: "mid senior months", text: "18 months at Initech", want: LevelMidSenior},
		{name: "years on another line", text: "3\nyears", want: LevelUnknown},
		{name: "part of larger number", text: "2019 graduate, years later", want: LevelUnknown},
		{name: "nothing", text: "no numbers", want: LevelUnknown},
		{name: "empty", text: "", want: LevelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperienceLevel(tt.text))
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	v := DefaultVocabulary()
	text := "Backend developer, 5 years, Docker"

	assert.Equal(t, v.Classify(text, []string{"Docker"}), v.Classify(text, []string{"Docker"}))
}
