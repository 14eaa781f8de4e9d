package tui

import (
	"context"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// Backend is the slice of the API client the editor needs. Tests
// substitute a fake; production passes *api.Client.
type Backend interface {
	GetDocument(ctx context.Context, id int) (*models.Document, error)
	UpdateDocumentSections(ctx context.Context, id int, secs []models.Section) error
	ConfirmHeadings(ctx context.Context, id int) error
	GenerateContent(ctx context.Context, id int) ([]models.Section, error)
	GetCompany(ctx context.Context, id int) (*models.Company, error)
}

// documentLoadedMsg carries the result of the initial document fetch.
type documentLoadedMsg struct {
	doc *models.Document
	err error
}

// saveTickMsg fires when the save debounce window elapses. Stale
// generations are ignored, which is what cancels a rescheduled save.
type saveTickMsg struct {
	gen int
}

// saveResultMsg carries the outcome of a background save.
type saveResultMsg struct {
	gen int
	err error
}

// historyTickMsg fires when the history debounce window elapses.
type historyTickMsg struct {
	gen int
}

// pollTickMsg fires on the readiness polling cadence.
type pollTickMsg struct {
	gen int
}

// statusCheckedMsg carries one readiness probe result.
type statusCheckedMsg struct {
	gen    int
	status models.ProcessingStatus
	err    error
}

// confirmResultMsg carries the outcome of persisting the confirmation.
type confirmResultMsg struct {
	err error
}

// generateResultMsg carries the outcome of content generation.
type generateResultMsg struct {
	sections []models.Section
	err      error
}

// statusFlashMsg updates the transient status line.
type statusFlashMsg string

// statusFlashClearMsg blanks the status line once the flash has been
// visible long enough; stale generations were superseded by a newer
// flash and are ignored.
type statusFlashClearMsg struct {
	gen int
}
