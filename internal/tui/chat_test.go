package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/documentai/cli/internal/chat"
)

// startUpload puts a model into the uploading state with the given batch,
// the way the /upload command does.
func startUpload(t *testing.T, m *ChatModel, files ...string) {
	t.Helper()
	m.state.SelectFiles(files...)
	require.True(t, m.state.BeginUpload())
	m.uploadQueue = append([]string(nil), files...)
}

func TestChatUpdateHealthResult(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	assert.Equal(t, chat.StatusChecking, m.state.Status)

	m, cmd := m.Update(healthResultMsg{err: nil})
	assert.Nil(t, cmd)
	assert.Equal(t, chat.StatusConnected, m.state.Status)

	m.state.BeginConnectionCheck(m.state.APIURL)
	m, _ = m.Update(healthResultMsg{err: errors.New("connection refused")})
	assert.Equal(t, chat.StatusDisconnected, m.state.Status)
}

func TestChatUploadSequencing(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	startUpload(t, &m, "a.pdf", "b.csv")

	// The first result chains the next upload instead of finishing the batch.
	m, cmd := m.Update(fileUploadedMsg{index: 0, name: "a.pdf", sessionID: "s1"})
	assert.NotNil(t, cmd)
	assert.True(t, m.state.Uploading)
	assert.False(t, m.state.ChatEnabled)
	require.Len(t, m.state.Uploaded, 1)

	// The last result completes the batch and clears the queue.
	m, cmd = m.Update(fileUploadedMsg{index: 1, name: "b.csv", sessionID: "s2"})
	assert.Nil(t, cmd)
	assert.False(t, m.state.Uploading)
	assert.True(t, m.state.ChatEnabled)
	assert.Nil(t, m.uploadQueue)
	require.Len(t, m.state.Uploaded, 2)
	require.NotNil(t, m.state.Session)
	assert.Equal(t, "s2", m.state.Session.ID)
}

func TestChatUploadFailureStopsTheChain(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	startUpload(t, &m, "a.pdf", "b.csv")

	m, _ = m.Update(fileUploadedMsg{index: 0, name: "a.pdf", sessionID: "s1"})
	m, cmd := m.Update(uploadFailedMsg{err: errors.New("upload failed with status: 500")})

	assert.Nil(t, cmd)
	assert.False(t, m.state.Uploading)
	assert.Nil(t, m.uploadQueue)
	assert.Equal(t, 0, m.state.Progress)
	// The file that landed before the failure stays recorded.
	assert.Len(t, m.state.Uploaded, 1)
	assert.False(t, m.state.ChatEnabled)
}

func TestChatProgressTickOnlyWhileUploading(t *testing.T) {
	m := NewChatModel("http://localhost:8000")

	// Idle: the timer dies instead of re-arming.
	m, cmd := m.Update(progressTickMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.state.Progress)

	startUpload(t, &m, "a.pdf")
	m, cmd = m.Update(progressTickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, chat.ProgressStep, m.state.Progress)
}

func TestChatSessionTickAlwaysRearms(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	_, cmd := m.Update(sessionTickMsg{})
	assert.NotNil(t, cmd)
}

func TestChatAskResult(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	startUpload(t, &m, "a.pdf")
	m, _ = m.Update(fileUploadedMsg{index: 0, name: "a.pdf", sessionID: "s1"})
	require.True(t, m.state.ChatEnabled)

	_, ok := m.state.BeginAsk("What is the total?", time.Now())
	require.True(t, ok)

	m, cmd := m.Update(askResultMsg{answer: "42"})
	assert.Nil(t, cmd)
	assert.False(t, m.state.Processing)
	last := m.state.Messages[len(m.state.Messages)-1]
	assert.Equal(t, chat.RoleAssistant, last.Role)
	assert.Equal(t, "42", last.Content)
}

func TestChatFilesCommand(t *testing.T) {
	m := NewChatModel("http://localhost:8000")

	m, _ = m.runCommand(command{name: "files"})
	last := m.state.Messages[len(m.state.Messages)-1]
	assert.Equal(t, chat.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "No files")

	startUpload(t, &m, "a.pdf")
	m, _ = m.Update(fileUploadedMsg{index: 0, name: "a.pdf", sessionID: "s1"})
	m.state.SelectFiles("b.csv")

	m, _ = m.runCommand(command{name: "files"})
	last = m.state.Messages[len(m.state.Messages)-1]
	assert.Contains(t, last.Content, "[1] a.pdf")
	assert.Contains(t, last.Content, "[1] b.csv")
	assert.NotContains(t, last.Content, "Unknown command")
}

func TestChatSessionCommand(t *testing.T) {
	m := NewChatModel("http://localhost:8000")

	m, _ = m.runCommand(command{name: "session"})
	last := m.state.Messages[len(m.state.Messages)-1]
	assert.Equal(t, chat.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "No active session")

	startUpload(t, &m, "a.pdf")
	m, _ = m.Update(fileUploadedMsg{index: 0, name: "a.pdf", sessionID: "abc123"})

	m, _ = m.runCommand(command{name: "session"})
	last = m.state.Messages[len(m.state.Messages)-1]
	assert.Contains(t, last.Content, "Session abc123")
	assert.Contains(t, last.Content, "expires in")
	assert.NotContains(t, last.Content, "Unknown command")
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	for _, name := range []string{"connect", "reconnect", "add", "remove", "upload", "rmfile", "files", "session", "help", "quit"} {
		assert.Contains(t, helpText, "/"+name)
	}
}

func TestChatUnknownCommand(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	m, cmd := m.runCommand(command{name: "frobnicate"})

	assert.Nil(t, cmd)
	last := m.state.Messages[len(m.state.Messages)-1]
	assert.Equal(t, chat.RoleSystem, last.Role)
	assert.Contains(t, last.Content, "Unknown command: /frobnicate")
}

func TestChatUploadCommandWithEmptyBatch(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	m, cmd := m.runCommand(command{name: "upload"})

	assert.Nil(t, cmd)
	assert.False(t, m.state.Uploading)
	last := m.state.Messages[len(m.state.Messages)-1]
	assert.Contains(t, last.Content, "Nothing to upload")
}

func TestChatQuitKeys(t *testing.T) {
	m := NewChatModel("http://localhost:8000")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
