package tui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entwurf/entwurf-cli/pkg/api"
	"github.com/entwurf/entwurf-cli/pkg/history"
	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
)

// editorMode is the coarse state controlling which operations the
// editor permits. Once a session leaves modeNone it never returns; from
// modeConfirmedHeadings on, the id set and order are frozen and only
// section content may change.
type editorMode int

const (
	modeNone editorMode = iota
	modeReviewHeadings
	modeConfirmedHeadings
	modeEditingContent
)

func (m editorMode) String() string {
	switch m {
	case modeReviewHeadings:
		return "Gliederung"
	case modeConfirmedHeadings:
		return "Bestätigt"
	case modeEditingContent:
		return "Inhalt"
	default:
		return "Leer"
	}
}

// focusArea is which pane receives key input.
type focusArea int

const (
	focusSections focusArea = iota
	focusChat
	focusContent
)

// failedOp remembers which blocking operation to retry from the error
// panel.
type failedOp int

const (
	failedNone failedOp = iota
	failedLoad
	failedGenerate
)

const (
	historyDebounce = 500 * time.Millisecond
	saveDebounce    = time.Second
	statusFlashHold = 3 * time.Second
)

// EditorModel is the document editor: it owns the section model for the
// lifetime of one session and replaces it wholesale on every change.
type EditorModel struct {
	client    Backend
	docID     int
	companyID int

	mode     editorMode
	sections []models.Section
	cursor   int
	loaded   bool

	hist     *history.History
	histDeb  debouncer
	saveDeb  debouncer
	flashDeb debouncer
	saving   bool

	poller     readinessPoller
	generating bool

	chatInput textinput.Model
	chatLog   []models.ChatMessage

	content      textarea.Model
	editingIndex int

	list  viewport.Model
	spin  spinner.Model
	focus focusArea

	width  int
	height int

	err      error
	failed   failedOp
	status   string
	quitting bool
	quitMsg  string
}

// NewEditorModel builds an editor session for one document/company pair.
func NewEditorModel(client Backend, docID, companyID int) *EditorModel {
	ti := textinput.New()
	ti.Placeholder = `Befehl, z.B. "remove 5.2 and 5.3"`
	ti.CharLimit = 200

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &EditorModel{
		client:       client,
		docID:        docID,
		companyID:    companyID,
		mode:         modeNone,
		hist:         history.New(),
		histDeb:      debouncer{delay: historyDebounce},
		saveDeb:      debouncer{delay: saveDebounce},
		flashDeb:     debouncer{delay: statusFlashHold},
		poller:       newReadinessPoller(),
		chatInput:    ti,
		content:      ta,
		editingIndex: -1,
		spin:         sp,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(m.loadDocumentCmd(), m.spin.Tick)
}

// QuitMessage is shown by the caller after the program exits, e.g. the
// sign-out notice.
func (m *EditorModel) QuitMessage() string {
	return m.quitMsg
}

func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.Width = m.paneWidth()
	m.list.Height = m.paneHeight()
	m.content.SetWidth(m.paneWidth())
	m.content.SetHeight(m.paneHeight())
	m.chatInput.Width = m.paneWidth() - 4
	m.refreshList()
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case documentLoadedMsg:
		return m, m.handleDocumentLoaded(msg)

	case saveTickMsg:
		if !m.saveDeb.current(msg.gen) {
			return m, nil
		}
		return m, m.saveCmd(msg.gen)

	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m, m.signOut()
			}
			// Optimistic model: the UI already shows the new state and
			// the next debounced save carries the full payload anyway.
			log.Printf("save failed (will not retry): %v", msg.err)
		}
		return m, nil

	case historyTickMsg:
		if m.histDeb.current(msg.gen) {
			m.hist.Capture(m.sections)
		}
		return m, nil

	case pollTickMsg:
		return m, m.poller.handleTick(msg, m.client, m.companyID)

	case statusCheckedMsg:
		if msg.err != nil && api.IsAuthError(msg.err) {
			return m, m.signOut()
		}
		m.poller.handleStatus(msg)
		return m, nil

	case confirmResultMsg:
		if msg.err != nil {
			if api.IsAuthError(msg.err) {
				return m, m.signOut()
			}
			log.Printf("confirm headings failed: %v", msg.err)
		}
		return m, nil

	case generateResultMsg:
		return m, m.handleGenerateResult(msg)

	case statusFlashMsg:
		m.status = string(msg)
		return m, m.flashDeb.trigger(func(gen int) tea.Msg { return statusFlashClearMsg{gen: gen} })

	case statusFlashClearMsg:
		if m.flashDeb.current(msg.gen) {
			m.status = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keys by blocking state, focus and mode.
func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.teardownAndQuit("")
	}

	if m.err != nil {
		switch msg.String() {
		case "r":
			return m, m.retryFailed()
		case "q", "esc":
			return m, m.teardownAndQuit("")
		}
		return m, nil
	}

	switch m.focus {
	case focusChat:
		return m.handleChatKey(msg)
	case focusContent:
		return m.handleContentKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, m.teardownAndQuit("")
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "ctrl+z":
		return m, m.undo()
	case "ctrl+y":
		return m, m.redo()
	case "y":
		return m, m.yankSection()
	}

	switch m.mode {
	case modeNone:
		if msg.String() == "n" {
			return m, m.createHeadings()
		}

	case modeReviewHeadings:
		switch msg.String() {
		case "d":
			return m, m.deleteSelected()
		case "shift+up", "K":
			return m, m.moveSelected(-1)
		case "shift+down", "J":
			return m, m.moveSelected(1)
		case "c":
			return m, m.confirmHeadings()
		case "tab":
			m.focus = focusChat
			m.chatInput.Focus()
			return m, textinput.Blink
		}

	case modeConfirmedHeadings:
		switch msg.String() {
		case "g":
			if m.poller.status == models.StatusDone {
				return m, m.generateContent()
			}
		case "o":
			// Explicit override after a failed preprocessing run.
			if m.poller.status == models.StatusFailed {
				return m, m.generateContent()
			}
		}

	case modeEditingContent:
		if msg.String() == "enter" {
			return m, m.openContentEditor()
		}
	}

	return m, nil
}

// handleChatKey feeds the chat input pane.
func (m *EditorModel) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusSections
		m.chatInput.Blur()
		return m, nil
	case "enter":
		return m, m.submitChat()
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// handleContentKey feeds the per-section content textarea. Every
// effective edit replaces the section model wholesale and schedules the
// debounced history capture and save.
func (m *EditorModel) handleContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeContentEditor()
		return m, nil
	case "ctrl+z":
		m.closeContentEditor()
		return m, m.undo()
	case "ctrl+y":
		m.closeContentEditor()
		return m, m.redo()
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	if changed := m.applyContentEdit(); changed != nil {
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

func (m *EditorModel) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.sections) {
		return
	}
	m.cursor = next
	m.refreshList()
}

// clampCursor keeps the cursor valid after structural changes.
func (m *EditorModel) clampCursor() {
	if m.cursor >= len(m.sections) {
		m.cursor = len(m.sections) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// loadDocumentCmd performs the initial fetch.
func (m *EditorModel) loadDocumentCmd() tea.Cmd {
	client, id := m.client, m.docID
	return func() tea.Msg {
		doc, err := client.GetDocument(context.Background(), id)
		return documentLoadedMsg{doc: doc, err: err}
	}
}

// handleDocumentLoaded installs the fetched model and infers the mode
// for the session. No save or history capture is scheduled here: the
// just-fetched state must not overwrite the server or count as an edit.
func (m *EditorModel) handleDocumentLoaded(msg documentLoadedMsg) tea.Cmd {
	if msg.err != nil {
		if api.IsAuthError(msg.err) {
			return m.signOut()
		}
		m.err = msg.err
		m.failed = failedLoad
		return nil
	}

	m.sections = msg.doc.Sections
	m.loaded = true
	m.hist.Seed(m.sections)

	switch {
	case len(m.sections) == 0:
		m.mode = modeNone
	case msg.doc.HeadingsConfirmed && hasContent(m.sections):
		m.mode = modeEditingContent
	case msg.doc.HeadingsConfirmed:
		m.mode = modeConfirmedHeadings
		m.refreshList()
		return m.poller.start(m.client, m.companyID)
	default:
		m.mode = modeReviewHeadings
	}
	m.refreshList()
	return nil
}

func hasContent(secs []models.Section) bool {
	for _, s := range secs {
		if s.Content != "" {
			return true
		}
	}
	return false
}

// markChanged schedules the two independent debounces that follow every
// section-model change. Nothing is scheduled before the initial load
// completes or without a known document id.
func (m *EditorModel) markChanged() tea.Cmd {
	if !m.loaded || m.docID == 0 {
		return nil
	}
	return tea.Batch(
		m.histDeb.trigger(func(gen int) tea.Msg { return historyTickMsg{gen: gen} }),
		m.saveDeb.trigger(func(gen int) tea.Msg { return saveTickMsg{gen: gen} }),
	)
}

// saveCmd persists the whole current model, fire-and-forget.
func (m *EditorModel) saveCmd(gen int) tea.Cmd {
	m.saving = true
	client, id := m.client, m.docID
	snapshot := sections.Clone(m.sections)
	return func() tea.Msg {
		err := client.UpdateDocumentSections(context.Background(), id, snapshot)
		return saveResultMsg{gen: gen, err: err}
	}
}

// signOut quits the session after an expired/invalid credential.
func (m *EditorModel) signOut() tea.Cmd {
	return m.teardownAndQuit("Sitzung abgelaufen. Bitte erneut mit 'entwurf login' anmelden.")
}

// teardownAndQuit releases all timers. In-flight saves are not awaited;
// losing the last second of typing on quit is the accepted tradeoff.
func (m *EditorModel) teardownAndQuit(reason string) tea.Cmd {
	m.saveDeb.cancel()
	m.histDeb.cancel()
	m.flashDeb.cancel()
	m.poller.stop()
	m.quitting = true
	m.quitMsg = reason
	return tea.Quit
}

// retryFailed re-runs the blocking operation behind the error panel.
func (m *EditorModel) retryFailed() tea.Cmd {
	op := m.failed
	m.err = nil
	m.failed = failedNone
	switch op {
	case failedLoad:
		return m.loadDocumentCmd()
	case failedGenerate:
		return m.generateContent()
	}
	return nil
}
