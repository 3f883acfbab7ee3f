// Package tui is the terminal user interface for the DocumentAI client: a
// sign-in view that configures and verifies the API URL, and a chat view for
// uploading documents and asking questions about them.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/documentai/cli/config"
)

// view identifies the active screen.
type view int

const (
	viewSignin view = iota
	viewChat
)

// App is the root application model. It routes between the sign-in and chat
// views; with no API URL configured the user lands on sign-in first, exactly
// as the web client redirected.
type App struct {
	cfg    *config.Config
	active view
	signin SigninModel
	chat   ChatModel
	width  int
	height int
}

// NewApp creates the root model from loaded configuration
func NewApp(cfg *config.Config) *App {
	app := &App{
		cfg:    cfg,
		signin: NewSigninModel(cfg),
	}
	if cfg.APIURL != "" {
		app.active = viewChat
		app.chat = NewChatModel(cfg.APIURL)
	}
	return app
}

// Run starts the TUI and blocks until it exits
func (a *App) Run() error {
	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}

// Init initializes the active view
func (a *App) Init() tea.Cmd {
	if a.active == viewChat {
		return a.chat.Init()
	}
	return a.signin.Init()
}

// Update routes events to the active view
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case signinDoneMsg:
		a.active = viewChat
		a.chat = NewChatModel(msg.apiURL)
		cmds := []tea.Cmd{a.chat.Init()}
		if a.width > 0 {
			var cmd tea.Cmd
			a.chat, cmd = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	if a.active == viewChat {
		a.chat, cmd = a.chat.Update(msg)
	} else {
		a.signin, cmd = a.signin.Update(msg)
	}
	return a, cmd
}

// View renders the active view
func (a *App) View() string {
	if a.active == viewChat {
		return a.chat.View()
	}
	return a.signin.View()
}
