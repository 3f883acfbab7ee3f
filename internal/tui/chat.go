package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/documentai/cli/internal/chat"
	"github.com/documentai/cli/internal/docai"
)

// chromeHeight is the number of terminal rows around the transcript viewport:
// header, two file-panel rows, activity row, input row, footer.
const chromeHeight = 6

// ChatModel is the chat view. It owns the page state and projects it onto the
// terminal; every network result arrives as a message and is applied through
// a state transition before the next render.
type ChatModel struct {
	state  *chat.State
	client *docai.Client

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model

	// uploadQueue is the batch snapshot taken when an upload starts, so edits
	// to the pending list cannot disturb an upload already in flight.
	uploadQueue []string

	width  int
	height int
	ready  bool
}

// NewChatModel creates the chat view bound to apiURL
func NewChatModel(apiURL string) ChatModel {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = inputPromptStyle
	input.CharLimit = 2048
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantLabelStyle

	return ChatModel{
		state:    chat.NewState(apiURL),
		client:   docai.NewClient(apiURL),
		input:    input,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

// Init launches the initial connection check and the session ticker
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		checkHealth(m.client),
		sessionTick(),
		textinput.Blink,
	)
}

// Update handles chat events
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, max(msg.Height-chromeHeight, 1))
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = max(msg.Height-chromeHeight, 1)
		}
		m.input.Width = msg.Width - 4
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case healthResultMsg:
		m.state.ResolveConnectionCheck(msg.err)
		m.syncViewport()
		return m, nil

	case fileUploadedMsg:
		m.state.FileUploaded(msg.name, msg.sessionID, time.Now())
		if msg.index+1 < len(m.uploadQueue) {
			return m, uploadFile(m.client, m.uploadQueue[msg.index+1], msg.index+1)
		}
		m.state.CompleteUpload()
		m.uploadQueue = nil
		m.syncViewport()
		return m, nil

	case uploadFailedMsg:
		m.state.FailUpload(msg.err.Error())
		m.uploadQueue = nil
		m.syncViewport()
		return m, nil

	case progressTickMsg:
		if !m.state.Uploading {
			return m, nil
		}
		m.state.AdvanceProgress()
		return m, progressTick()

	case sessionTickMsg:
		if m.state.Tick(time.Now()) {
			m.syncViewport()
		}
		return m, sessionTick()

	case askResultMsg:
		m.state.ResolveAsk(msg.answer, msg.err)
		m.syncViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the Enter key: slash commands or a question
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")

	if cmd, ok := parseCommand(line); ok {
		return m.runCommand(cmd)
	}

	question, ok := m.state.BeginAsk(line, time.Now())
	if !ok {
		m.syncViewport() // BeginAsk may have expired the session
		return m, nil
	}

	m.syncViewport()
	return m, tea.Batch(
		ask(m.client, m.state.Session.ID, question),
		m.spinner.Tick,
	)
}

// runCommand dispatches a parsed slash command
func (m ChatModel) runCommand(cmd command) (ChatModel, tea.Cmd) {
	switch cmd.name {
	case "connect":
		if len(cmd.args) != 1 {
			m.state.Notify("Usage: /connect <url>")
			break
		}
		m.client = docai.NewClient(cmd.args[0])
		m.state.BeginConnectionCheck(m.client.BaseURL())
		m.syncViewport()
		return m, checkHealth(m.client)

	case "reconnect":
		if m.state.APIURL == "" {
			break
		}
		m.state.BeginConnectionCheck(m.state.APIURL)
		m.syncViewport()
		return m, checkHealth(m.client)

	case "add":
		if len(cmd.args) == 0 {
			m.state.Notify("Usage: /add <path>...")
			break
		}
		m.addFiles(cmd.args)

	case "remove":
		if i, ok := parseIndex(cmd.args); ok {
			m.state.RemoveSelected(i)
		} else {
			m.state.Notify("Usage: /remove <number>")
		}

	case "upload":
		if !m.state.BeginUpload() {
			m.state.Notify("Nothing to upload. Add files with /add first.")
			break
		}
		m.uploadQueue = append([]string(nil), m.state.Selected...)
		return m, tea.Batch(
			uploadFile(m.client, m.uploadQueue[0], 0),
			progressTick(),
		)

	case "rmfile":
		if i, ok := parseIndex(cmd.args); ok {
			m.state.RemoveUploaded(i)
		} else {
			m.state.Notify("Usage: /rmfile <number>")
		}

	case "files":
		m.state.Notify(m.fileSummary())

	case "session":
		m.state.Notify(m.sessionSummary())

	case "help":
		m.state.Notify(helpText)

	case "quit", "exit":
		return m, tea.Quit

	default:
		m.state.Notify(fmt.Sprintf("Unknown command: /%s (try /help)", cmd.name))
	}

	m.syncViewport()
	return m, nil
}

// addFiles stats each path and adds the readable ones to the pending batch
func (m *ChatModel) addFiles(paths []string) {
	var added []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			m.state.Notify(fmt.Sprintf("Cannot read %s: %v", path, err))
			continue
		}
		added = append(added, path)
	}
	if len(added) == 0 {
		return
	}
	m.state.SelectFiles(added...)
	m.state.Notify(fmt.Sprintf("%d file(s) pending. Use /upload to send them.", len(m.state.Selected)))
}

// fileSummary lists the uploaded and pending files for the /files command
func (m *ChatModel) fileSummary() string {
	if len(m.state.Uploaded) == 0 && len(m.state.Selected) == 0 {
		return "No files. Add some with /add, then /upload."
	}

	var b strings.Builder
	b.WriteString("Uploaded:")
	if len(m.state.Uploaded) == 0 {
		b.WriteString(" none")
	}
	for i, f := range m.state.Uploaded {
		b.WriteString(fmt.Sprintf("\n  [%d] %s", i+1, f.Name))
	}
	b.WriteString("\nPending:")
	if len(m.state.Selected) == 0 {
		b.WriteString(" none")
	}
	for i, p := range m.state.Selected {
		b.WriteString(fmt.Sprintf("\n  [%d] %s", i+1, p))
	}
	return b.String()
}

// sessionSummary reports the active session for the /session command
func (m *ChatModel) sessionSummary() string {
	if m.state.Session == nil {
		return "No active session. Upload a document to start one."
	}
	return fmt.Sprintf("Session %s, expires in %s.",
		m.state.Session.ID, m.state.Session.Remaining(time.Now()))
}

// parseIndex converts a 1-based argument to a 0-based index
func parseIndex(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// syncViewport re-renders the transcript and follows the newest message
func (m *ChatModel) syncViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// renderMessages renders the conversation log for the viewport
func (m *ChatModel) renderMessages() string {
	width := max(m.width-2, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, msg := range m.state.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case chat.RoleUser:
			b.WriteString(userLabelStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(msg.Content))
		case chat.RoleAssistant:
			b.WriteString(assistantLabelStyle.Render("DocumentAI"))
			b.WriteString("\n")
			b.WriteString(renderMarkdown(msg.Content, width))
		case chat.RoleSystem:
			b.WriteString(wrap.Inherit(systemMsgStyle).Render(msg.Content))
		}
	}

	if m.state.Processing {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		b.WriteString(mutedStyle.Render(" Thinking..."))
	}

	return b.String()
}

// View renders the chat screen
func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Mirror the page state in the placeholder, as the web client did.
	switch {
	case m.state.Status != chat.StatusConnected:
		m.input.Placeholder = "Connecting to API..."
	case !m.state.ChatEnabled:
		m.input.Placeholder = "Upload documents to enable chat"
	default:
		m.input.Placeholder = "Ask a question about your documents..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.filesView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.activityView())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Enter to send · /help for commands · Ctrl+C to quit"))
	return b.String()
}

// headerView renders the title, connection status, and session countdown
func (m ChatModel) headerView() string {
	dot := disconnectedDot
	switch m.state.Status {
	case chat.StatusConnected:
		dot = connectedDot
	case chat.StatusChecking:
		dot = checkingDot
	}

	segments := []string{
		titleStyle.Render("DocumentAI"),
		fmt.Sprintf("%s %s", dot, runewidth.Truncate(m.state.APIURL, 32, "…")),
	}
	if m.state.Session != nil {
		segments = append(segments, fmt.Sprintf("Session: %s", m.state.Session.Remaining(time.Now())))
	}
	return statusBarStyle.Render(strings.Join(segments, "  │  "))
}

// filesView renders the uploaded and pending file lists
func (m ChatModel) filesView() string {
	uploaded := mutedStyle.Render("none")
	if len(m.state.Uploaded) > 0 {
		names := make([]string, len(m.state.Uploaded))
		for i, f := range m.state.Uploaded {
			names[i] = fmt.Sprintf("[%d] %s", i+1, f.Name)
		}
		uploaded = fileStyle.Render(strings.Join(names, "  "))
	}

	pending := mutedStyle.Render("none")
	if len(m.state.Selected) > 0 {
		names := make([]string, len(m.state.Selected))
		for i, p := range m.state.Selected {
			names[i] = fmt.Sprintf("[%d] %s", i+1, p)
		}
		pending = fileStyle.Render(strings.Join(names, "  "))
	}

	return mutedStyle.Render("Documents: ") + uploaded + "\n" +
		mutedStyle.Render("Pending:   ") + pending
}

// activityView renders the upload progress bar while a batch is in flight
func (m ChatModel) activityView() string {
	if m.state.Uploading {
		return m.progress.ViewAs(float64(m.state.Progress) / 100)
	}
	return ""
}
