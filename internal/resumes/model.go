package resumes

import (
	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
)

// Status is a stage of the ingestion pipeline.
type Status string

const (
	StatusReceived         Status = "received"
	StatusExtracting       Status = "extracting"
	StatusExtractionFailed Status = "extraction_failed"
	StatusTextReady        Status = "text_ready"
	StatusClassifying      Status = "classifying"
	StatusAssembling       Status = "assembling"
	StatusAssembled        Status = "assembled"
	StatusPersisted        Status = "persisted"
	StatusFailed           Status = "failed"
)

// RawDocument is one upload as received from the caller.
type RawDocument struct {
	FileName string
	Data     []byte
}

// Resume is a persisted screening record.
type Resume struct {
	ID string `json:"id"`
	screening.Record
	ExtractionSource extract.Source `json:"extractionSource"`
	Checksum         string         `json:"checksum"`
	MimeType         string         `json:"mimeType"`
	StorageKey       string         `json:"storageKey,omitempty"`
}

// SkillCount is one row of the top-skills aggregate.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// ExperienceCount is one row of the experience-level aggregate.
type ExperienceCount struct {
	ExperienceLevel string `json:"experienceLevel"`
	Count           int    `json:"count"`
}

// Summary aggregates the stored records.
type Summary struct {
	TotalCount   int               `json:"totalCount"`
	TopSkills    []SkillCount      `json:"topSkills"`
	ByExperience []ExperienceCount `json:"byExperience"`
}
