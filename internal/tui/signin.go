package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/documentai/cli/config"
	"github.com/documentai/cli/internal/docai"
)

// demoPassword gates the demo deployment. There are no accounts; the only
// credential is the shared password carried over from the web client.
const demoPassword = "documentai"

// defaultAPIURL pre-fills the URL field for a typical local backend
const defaultAPIURL = "http://127.0.0.1:8000"

// signinDoneMsg tells the root model that sign-in finished and which URL was
// saved.
type signinDoneMsg struct {
	apiURL string
}

// SigninModel is the sign-in view: API URL plus demo password. The URL is
// validated and health-checked before the password is even considered, and
// only a fully successful submit persists the URL to the config file.
type SigninModel struct {
	cfg      *config.Config
	urlInput textinput.Model
	pwInput  textinput.Model
	focusPw  bool
	checking bool
	errMsg   string
	width    int
	height   int
}

// NewSigninModel creates the sign-in view
func NewSigninModel(cfg *config.Config) SigninModel {
	urlInput := textinput.New()
	urlInput.Placeholder = defaultAPIURL
	urlInput.Prompt = "API URL  > "
	urlInput.PromptStyle = inputPromptStyle
	urlInput.CharLimit = 256
	if cfg.APIURL != "" {
		urlInput.SetValue(cfg.APIURL)
	}
	urlInput.Focus()

	pwInput := textinput.New()
	pwInput.Placeholder = "password"
	pwInput.Prompt = "Password > "
	pwInput.PromptStyle = inputPromptStyle
	pwInput.EchoMode = textinput.EchoPassword
	pwInput.EchoCharacter = '•'
	pwInput.CharLimit = 64

	return SigninModel{
		cfg:      cfg,
		urlInput: urlInput,
		pwInput:  pwInput,
	}
}

// Init starts the cursor blink
func (m SigninModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles sign-in events
func (m SigninModel) Update(msg tea.Msg) (SigninModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.checking {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusPw = !m.focusPw
			if m.focusPw {
				m.urlInput.Blur()
				return m, m.pwInput.Focus()
			}
			m.pwInput.Blur()
			return m, m.urlInput.Focus()
		case "enter":
			return m.submit()
		}

	case signinHealthMsg:
		m.checking = false
		if msg.err != nil {
			m.errMsg = "Failed to connect to the API. Please check the URL and ensure the server is running."
			return m, nil
		}
		return m.verifyPassword()
	}

	var cmd tea.Cmd
	if m.focusPw {
		m.pwInput, cmd = m.pwInput.Update(msg)
	} else {
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

// submit validates the URL and launches the health check. The password is
// checked only after the API answers.
func (m SigninModel) submit() (SigninModel, tea.Cmd) {
	apiURL := strings.TrimSpace(m.urlInput.Value())
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	if err := config.ValidateURL(apiURL); err != nil {
		m.errMsg = "Please enter a valid URL (e.g. http://127.0.0.1:8000)"
		return m, nil
	}

	m.urlInput.SetValue(apiURL)
	m.errMsg = ""
	m.checking = true
	return m, checkSigninHealth(docai.NewClient(apiURL))
}

// verifyPassword finishes sign-in once the API is reachable
func (m SigninModel) verifyPassword() (SigninModel, tea.Cmd) {
	if m.pwInput.Value() != demoPassword {
		m.errMsg = "Invalid password. Please try again."
		return m, nil
	}

	apiURL := m.urlInput.Value()
	m.cfg.APIURL = apiURL
	if err := m.cfg.Save(); err != nil {
		m.errMsg = fmt.Sprintf("Failed to save configuration: %v", err)
		return m, nil
	}

	return m, func() tea.Msg { return signinDoneMsg{apiURL: apiURL} }
}

// View renders the sign-in form
func (m SigninModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DocumentAI"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Sign in to chat with your documents"))
	b.WriteString("\n\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n")
	b.WriteString(m.pwInput.View())
	b.WriteString("\n\n")

	switch {
	case m.checking:
		b.WriteString(mutedStyle.Render("Checking API connection..."))
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	default:
		b.WriteString(mutedStyle.Render("Enter to sign in, Tab to switch fields, Ctrl+C to quit"))
	}

	form := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if m.width == 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
