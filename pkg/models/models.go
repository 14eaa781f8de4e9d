package models

import "time"

// Section is one addressable block of a document. The ID is a dotted
// sequence of positive integers ("1", "4.2", "4.2.1") that defines both
// display order and hierarchy depth. By convention the title carries the
// id as a prefix ("4.2. Arbeitsplan"); renumbering keeps them in sync.
type Section struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Document is a grant draft ("Vorhabensbeschreibung") as served by the
// backend. Sections live inside the content_json envelope on the wire.
type Document struct {
	ID                int       `json:"id" yaml:"id"`
	Title             string    `json:"title" yaml:"title"`
	Sections          []Section `json:"sections" yaml:"sections"`
	HeadingsConfirmed bool      `json:"headings_confirmed" yaml:"headings_confirmed"`
	UpdatedAt         time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Company is the preprocessing subject whose status gates content
// generation. The editor never computes the status, it only reads it.
type Company struct {
	ID               int              `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	ProcessingStatus ProcessingStatus `json:"processing_status" yaml:"processing_status"`
}

// ProcessingStatus is the externally-computed readiness of a company's
// preprocessed data (website crawl, audio transcription).
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusDone       ProcessingStatus = "done"
	StatusFailed     ProcessingStatus = "failed"
)

// Terminal reports whether the status ends a readiness poll.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Normalize maps an absent or unknown status to pending, the server's
// own default for companies that were never preprocessed.
func (s ProcessingStatus) Normalize() ProcessingStatus {
	switch s {
	case StatusPending, StatusProcessing, StatusDone, StatusFailed:
		return s
	default:
		return StatusPending
	}
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the editor's session-local chat transcript.
// The transcript is append-only and never persisted.
type ChatMessage struct {
	ID   string
	Role ChatRole
	Text string
}
