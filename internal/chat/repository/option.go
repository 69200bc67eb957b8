package repository

import "time"

// Transcript kinds and statuses.
const (
	KindCompare = "compare"
	KindChat    = "chat"

	StatusAppended  = "appended"
	StatusDiscarded = "discarded"
)

// Transcript is one archived interaction.
type Transcript struct {
	ID           string
	SessionID    string
	Kind         string
	Status       string
	Question     string
	DocumentName string
	Temperature  float64
	Model1       string
	Response1    string
	Error1       string
	Model2       string
	Response2    string
	Error2       string
	CreatedAt    time.Time
}

// SaveTranscriptOptions holds the fields of a new Transcript. The ID and
// creation time are assigned by the repository.
type SaveTranscriptOptions struct {
	SessionID    string
	Kind         string
	Status       string
	Question     string
	DocumentName string
	Temperature  float64
	Model1       string
	Response1    string
	Error1       string
	Model2       string
	Response2    string
	Error2       string
}

// ListTranscriptsOptions filters transcripts. Results are oldest first.
type ListTranscriptsOptions struct {
	SessionID string
	Status    string
	Limit     int
}
