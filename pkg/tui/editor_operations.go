package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/entwurf/entwurf-cli/pkg/api"
	"github.com/entwurf/entwurf-cli/pkg/chat"
	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
	"github.com/entwurf/entwurf-cli/pkg/template"
)

// createHeadings expands the built-in schema into the initial section
// model and enters the structure-review mode.
func (m *EditorModel) createHeadings() tea.Cmd {
	if m.mode != modeNone {
		return nil
	}
	m.sections = template.BuiltinSections()
	m.mode = modeReviewHeadings
	m.cursor = 0
	m.refreshList()
	return m.markChanged()
}

// deleteSelected removes the selected heading with its subtree and
// renumbers. Only available while the structure is under review.
func (m *EditorModel) deleteSelected() tea.Cmd {
	if m.mode != modeReviewHeadings || len(m.sections) == 0 {
		return nil
	}
	target := m.sections[m.cursor].ID
	m.sections = sections.Renumber(sections.DeleteSubtree(m.sections, target))
	m.clampCursor()
	m.refreshList()
	return m.markChanged()
}

// moveSelected reorders the selected heading among its siblings.
func (m *EditorModel) moveSelected(dir int) tea.Cmd {
	if m.mode != modeReviewHeadings || len(m.sections) == 0 {
		return nil
	}
	moved := m.sections[m.cursor]
	var next []models.Section
	var newID string
	if dir < 0 {
		next, newID = sections.MoveUp(m.sections, moved.ID)
	} else {
		next, newID = sections.MoveDown(m.sections, moved.ID)
	}
	if newID == "" {
		return nil
	}
	m.sections = next
	// Follow the moved section so repeated moves keep acting on it.
	if idx := sections.IndexOf(m.sections, newID); idx >= 0 {
		m.cursor = idx
	}
	m.clampCursor()
	m.refreshList()
	return m.markChanged()
}

// confirmHeadings locks the structure and starts checking readiness.
// The history baseline is re-seeded so undo cannot cross the freeze
// boundary and resurrect deleted headings.
func (m *EditorModel) confirmHeadings() tea.Cmd {
	if m.mode != modeReviewHeadings {
		return nil
	}
	m.mode = modeConfirmedHeadings
	m.focus = focusSections
	m.chatInput.Blur()
	m.hist.Seed(m.sections)
	m.refreshList()

	client, id := m.client, m.docID
	confirm := func() tea.Msg {
		return confirmResultMsg{err: client.ConfirmHeadings(context.Background(), id)}
	}
	return tea.Batch(confirm, m.poller.start(m.client, m.companyID))
}

// generateContent asks the backend to draft all sections. Only
// meaningful once readiness is done, or explicitly after failed.
func (m *EditorModel) generateContent() tea.Cmd {
	if m.mode != modeConfirmedHeadings || m.generating {
		return nil
	}
	m.generating = true
	client, id := m.client, m.docID
	return func() tea.Msg {
		secs, err := client.GenerateContent(context.Background(), id)
		return generateResultMsg{sections: secs, err: err}
	}
}

// handleGenerateResult installs drafted content or absorbs the
// not-ready condition back into the poller.
func (m *EditorModel) handleGenerateResult(msg generateResultMsg) tea.Cmd {
	m.generating = false
	if msg.err != nil {
		switch {
		case api.IsAuthError(msg.err):
			return m.signOut()
		case errors.Is(msg.err, api.ErrCompanyNotReady):
			// Not an error: upstream preprocessing is still running.
			m.poller.status = models.StatusProcessing
			return m.poller.start(m.client, m.companyID)
		default:
			m.err = msg.err
			m.failed = failedGenerate
			return nil
		}
	}

	m.sections = msg.sections
	m.mode = modeEditingContent
	m.hist.Seed(m.sections)
	m.clampCursor()
	m.refreshList()
	return nil
}

// openContentEditor focuses the textarea on the selected section.
func (m *EditorModel) openContentEditor() tea.Cmd {
	if m.mode != modeEditingContent || len(m.sections) == 0 {
		return nil
	}
	m.editingIndex = m.cursor
	m.content.SetValue(m.sections[m.cursor].Content)
	m.focus = focusContent
	return m.content.Focus()
}

// closeContentEditor returns focus to the section list.
func (m *EditorModel) closeContentEditor() {
	m.editingIndex = -1
	m.focus = focusSections
	m.content.Blur()
	m.refreshList()
}

// applyContentEdit copies the textarea value into the section model
// (wholesale replacement) when it differs, returning the debounce
// scheduling command, or nil when nothing changed.
func (m *EditorModel) applyContentEdit() tea.Cmd {
	if m.editingIndex < 0 || m.editingIndex >= len(m.sections) {
		return nil
	}
	value := m.content.Value()
	if m.sections[m.editingIndex].Content == value {
		return nil
	}
	next := sections.Clone(m.sections)
	next[m.editingIndex].Content = value
	m.sections = next
	return m.markChanged()
}

// undo steps the section model back one meaningful edit. An edit can
// still be waiting out its debounce window when undo fires; it is
// captured first so undo steps to the last state the user saw instead
// of past it. The restored model is persisted like any other change;
// capture skips it because it deep-equals the new top of the past
// stack.
func (m *EditorModel) undo() tea.Cmd {
	m.flushPendingCapture()
	restored, ok := m.hist.Undo(m.sections)
	if !ok {
		return nil
	}
	m.sections = restored
	m.clampCursor()
	m.refreshList()
	return m.markChanged()
}

// redo is the mirror of undo. Flushing a pending edit first clears the
// redo stack, which is the "fresh edit discards the redo branch" rule.
func (m *EditorModel) redo() tea.Cmd {
	m.flushPendingCapture()
	restored, ok := m.hist.Redo(m.sections)
	if !ok {
		return nil
	}
	m.sections = restored
	m.clampCursor()
	m.refreshList()
	return m.markChanged()
}

// flushPendingCapture records the current model immediately, orphaning
// any history tick still in flight. Keeps the "newest past entry equals
// the current model" invariant true at the moment Undo/Redo runs.
func (m *EditorModel) flushPendingCapture() {
	m.histDeb.cancel()
	m.hist.Capture(m.sections)
}

// yankSection copies the selected section's content (or its title when
// the content is still empty) to the system clipboard.
func (m *EditorModel) yankSection() tea.Cmd {
	if len(m.sections) == 0 {
		return nil
	}
	s := m.sections[m.cursor]
	text := s.Content
	if text == "" {
		text = s.Title
	}
	if err := clipboard.WriteAll(text); err != nil {
		return func() tea.Msg { return statusFlashMsg("Zwischenablage nicht verfügbar") }
	}
	return func() tea.Msg { return statusFlashMsg("Abschnitt " + s.ID + " kopiert") }
}

// submitChat runs the chat command interpreter against the current
// input. Unparsable input and unknown ids produce assistant replies and
// leave the model untouched.
func (m *EditorModel) submitChat() tea.Cmd {
	text := m.chatInput.Value()
	if text == "" {
		return nil
	}
	m.chatInput.SetValue("")
	m.appendChat(models.RoleUser, text)

	ids := chat.ParseRemoveCommand(text)
	if ids == nil {
		m.appendChat(models.RoleAssistant, chat.UsageReply())
		return nil
	}

	out, missing := chat.ExecuteRemove(m.sections, ids)
	if len(missing) > 0 {
		m.appendChat(models.RoleAssistant, chat.MissingReply(missing))
		return nil
	}

	m.sections = sections.Renumber(out)
	m.clampCursor()
	m.refreshList()
	m.appendChat(models.RoleAssistant, chat.ConfirmRemoval(ids))
	return m.markChanged()
}

func (m *EditorModel) appendChat(role models.ChatRole, text string) {
	m.chatLog = append(m.chatLog, models.ChatMessage{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
	})
}
