package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// App is the top-level program model. The editor is the only view of
// this client; App exists to own global concerns (window size, ctrl+c)
// the way every view-owning model here expects.
type App struct {
	editor *EditorModel
	width  int
	height int
}

// NewApp builds the program around one editor session.
func NewApp(client Backend, documentID, companyID int) *App {
	return &App{
		editor: NewEditorModel(client, documentID, companyID),
	}
}

func (a *App) Init() tea.Cmd {
	return a.editor.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
	}

	model, cmd := a.editor.Update(msg)
	if ed, ok := model.(*EditorModel); ok {
		a.editor = ed
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Lade..."
	}
	return a.editor.View()
}

// QuitMessage surfaces the editor's exit notice (e.g. sign-out) for the
// caller to print after the program terminates.
func (a *App) QuitMessage() string {
	return a.editor.QuitMessage()
}
