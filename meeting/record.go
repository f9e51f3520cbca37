package meeting

import (
	"fmt"
	"time"
)

// Status is the processing state of a meeting record.
type Status string

// Record lifecycle states. Completed and Failed are terminal.
const (
	StatusUploaded     Status = "uploaded"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusSummarizing  Status = "summarizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUploaded, StatusTranscribing, StatusTranscribed,
		StatusSummarizing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further automatic transition occurs from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ActionItem is a follow-up task extracted from a meeting.
type ActionItem struct {
	ID        string     `bson:"id" json:"id"`
	Text      string     `bson:"text" json:"text"`
	Owner     string     `bson:"owner,omitempty" json:"owner,omitempty"`
	DueDate   *time.Time `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Completed bool       `bson:"completed" json:"completed"`
	Priority  string     `bson:"priority,omitempty" json:"priority,omitempty"`
}

// Metadata holds derived properties of a processed meeting.
type Metadata struct {
	Language     string   `bson:"language,omitempty" json:"language,omitempty"`
	Duration     float64  `bson:"duration,omitempty" json:"duration,omitempty"`
	KeyTopics    []string `bson:"keyTopics,omitempty" json:"keyTopics,omitempty"`
	Participants []string `bson:"participants,omitempty" json:"participants,omitempty"`
	NextSteps    []string `bson:"nextSteps,omitempty" json:"nextSteps,omitempty"`
}

// Record is the unit of work and its persisted progress.
type Record struct {
	ID           string       `bson:"_id" json:"id"`
	Title        string       `bson:"title,omitempty" json:"title,omitempty"`
	Filename     string       `bson:"filename,omitempty" json:"filename,omitempty"`
	OriginalName string       `bson:"originalName,omitempty" json:"originalName,omitempty"`
	UploadDate   time.Time    `bson:"uploadDate" json:"uploadDate"`
	AudioPath    string       `bson:"audioPath,omitempty" json:"audioPath,omitempty"`
	Transcript   string       `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Summary      string       `bson:"summary,omitempty" json:"summary,omitempty"`
	Decisions    []string     `bson:"decisions,omitempty" json:"decisions,omitempty"`
	ActionItems  []ActionItem `bson:"actionItems,omitempty" json:"actionItems,omitempty"`
	Status       Status       `bson:"status" json:"status"`
	Error        string       `bson:"error,omitempty" json:"error,omitempty"`
	Metadata     Metadata     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// Field names used in partial updates, shared by every Store implementation.
const (
	FieldStatus      = "status"
	FieldTranscript  = "transcript"
	FieldSummary     = "summary"
	FieldDecisions   = "decisions"
	FieldActionItems = "actionItems"
	FieldMetadata    = "metadata"
	FieldError       = "error"
)

// CheckInvariants verifies the record's state invariants: a transcript must
// exist from StatusTranscribed onward, a summary at StatusCompleted, and an
// error message exactly when failed.
func (r *Record) CheckInvariants() error {
	switch r.Status {
	case StatusTranscribed, StatusSummarizing, StatusCompleted:
		if r.Transcript == "" {
			return fmt.Errorf("record %s: status %s without transcript", r.ID, r.Status)
		}
	}
	if r.Status == StatusCompleted && r.Summary == "" {
		return fmt.Errorf("record %s: completed without summary", r.ID)
	}
	if (r.Status == StatusFailed) != (r.Error != "") {
		return fmt.Errorf("record %s: error set iff failed violated (status=%s, error=%q)", r.ID, r.Status, r.Error)
	}
	return nil
}
