package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePaneStyle = paneStyle.
			BorderForeground(lipgloss.Color("62"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	userMsgStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
	assistantMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("150"))
)

func (m *EditorModel) paneWidth() int {
	w := m.width/2 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *EditorModel) paneHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m *EditorModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Lade..."
	}
	if m.err != nil {
		return m.errorView()
	}
	if !m.loaded {
		return m.spin.View() + " Dokument wird geladen..."
	}

	header := titleStyle.Render(fmt.Sprintf(" entwurf — Dokument %d — %s ", m.docID, m.mode))

	left := m.leftPaneStyle().Render(m.list.View())
	right := m.rightPane()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar())
}

func (m *EditorModel) leftPaneStyle() lipgloss.Style {
	if m.focus == focusSections {
		return activePaneStyle
	}
	return paneStyle
}

// rightPane picks the context pane for the current mode: the chat while
// reviewing the structure, the readiness panel while waiting, and the
// content editor or preview afterwards.
func (m *EditorModel) rightPane() string {
	style := paneStyle
	if m.focus != focusSections {
		style = activePaneStyle
	}

	switch m.mode {
	case modeNone:
		return style.Width(m.paneWidth() + 2).Render(
			"Noch keine Gliederung.\n\n" + dimStyle.Render("n: Gliederung aus Vorlage erstellen"))
	case modeReviewHeadings:
		return style.Width(m.paneWidth() + 2).Render(m.chatView())
	case modeConfirmedHeadings:
		return style.Width(m.paneWidth() + 2).Render(m.readinessView())
	default:
		if m.focus == focusContent {
			return style.Render(m.content.View())
		}
		return style.Width(m.paneWidth() + 2).Render(m.previewView())
	}
}

// refreshList re-renders the section list into the viewport. Called
// from Update after any change; View stays read-only.
func (m *EditorModel) refreshList() {
	var b strings.Builder
	for i, s := range m.sections {
		indent := strings.Repeat("  ", sections.Depth(s.ID)-1)
		line := indent + s.Title
		if i == m.cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		if m.mode == modeEditingContent && s.Content == "" {
			line += dimStyle.Render(" (leer)")
		}
		b.WriteString(line + "\n")
	}
	m.list.SetContent(b.String())
	m.scrollToCursor()
}

// scrollToCursor keeps the selected row inside the viewport window.
func (m *EditorModel) scrollToCursor() {
	if m.list.Height <= 0 {
		return
	}
	top := m.list.YOffset
	bottom := top + m.list.Height - 1
	switch {
	case m.cursor < top:
		m.list.SetYOffset(m.cursor)
	case m.cursor > bottom:
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

func (m *EditorModel) chatView() string {
	width := m.paneWidth() - 2
	var b strings.Builder
	b.WriteString(dimStyle.Render("Gliederungs-Chat") + "\n\n")

	transcript := m.chatLog
	if max := m.paneHeight() / 3; len(transcript) > max && max > 0 {
		transcript = transcript[len(transcript)-max:]
	}
	for _, msg := range transcript {
		prefix := "Du: "
		style := userMsgStyle
		if msg.Role == models.RoleAssistant {
			prefix = "Assistent: "
			style = assistantMsgStyle
		}
		b.WriteString(style.Render(wordwrap.String(prefix+msg.Text, width)) + "\n")
	}

	b.WriteString("\n" + m.chatInput.View())
	return b.String()
}

func (m *EditorModel) readinessView() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Unternehmensdaten") + "\n\n")

	switch m.poller.status {
	case models.StatusDone:
		b.WriteString("Aufbereitung abgeschlossen.\n\n")
		b.WriteString(dimStyle.Render("g: Inhalte generieren"))
	case models.StatusFailed:
		b.WriteString(errorStyle.Render("Aufbereitung fehlgeschlagen.") + "\n\n")
		b.WriteString(dimStyle.Render("o: trotzdem generieren"))
	default:
		b.WriteString(m.spin.View() + " Daten werden aufbereitet (" + string(m.poller.status.Normalize()) + ")...\n")
	}
	if m.generating {
		b.WriteString("\n" + m.spin.View() + " Inhalte werden generiert...")
	}
	return b.String()
}

// previewView renders the selected section's content; milestone
// sections get a small table instead of raw JSON.
func (m *EditorModel) previewView() string {
	if len(m.sections) == 0 {
		return dimStyle.Render("Keine Abschnitte.")
	}
	s := m.sections[m.cursor]
	width := m.paneWidth() - 2

	var b strings.Builder
	b.WriteString(dimStyle.Render(s.Title) + "\n\n")

	if table, ok := models.MilestonesFromContent(s.Content); ok {
		b.WriteString(milestoneTable(table, width))
	} else if s.Content == "" {
		b.WriteString(dimStyle.Render("(noch kein Inhalt — Enter zum Bearbeiten)"))
	} else {
		b.WriteString(wordwrap.String(s.Content, width))
	}
	return b.String()
}

func milestoneTable(table *models.MilestoneTable, width int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-30s %-10s %-10s\n", "Meilenstein", "Start", "Ende"))
	b.WriteString(strings.Repeat("─", min(width, 52)) + "\n")
	for _, ms := range table.Milestones {
		name := ms.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		b.WriteString(fmt.Sprintf("%-30s %-10s %-10s\n", name, ms.Start, ms.End))
	}
	return b.String()
}

func (m *EditorModel) statusBar() string {
	var parts []string

	switch m.mode {
	case modeReviewHeadings:
		parts = append(parts, "d: löschen", "K/J: verschieben", "c: bestätigen", "tab: chat")
	case modeConfirmedHeadings:
		if m.poller.checking {
			parts = append(parts, m.spin.View()+" Status wird geprüft")
		}
	case modeEditingContent:
		if m.focus == focusContent {
			parts = append(parts, "esc: fertig")
		} else {
			parts = append(parts, "enter: bearbeiten", "ctrl+z: rückgängig")
		}
	}

	if m.saving {
		parts = append(parts, "speichert...")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, "q: beenden")

	return statusStyle.Render(strings.Join(parts, "  ·  "))
}

func (m *EditorModel) errorView() string {
	msg := wordwrap.String(m.err.Error(), m.width-8)
	body := errorStyle.Render("Fehler") + "\n\n" + msg + "\n\n" +
		dimStyle.Render("r: erneut versuchen  ·  q: beenden")
	return paneStyle.Width(m.width - 4).Render(body)
}
