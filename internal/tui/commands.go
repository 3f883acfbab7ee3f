package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/documentai/cli/internal/docai"
)

// Upload progress advances every progressInterval while an upload is in
// flight; the session countdown redraws every second.
const (
	progressInterval = 100 * time.Millisecond
	sessionInterval  = time.Second
)

// checkHealth probes the API for the chat view
func checkHealth(client *docai.Client) tea.Cmd {
	return func() tea.Msg {
		return healthResultMsg{err: client.Health(context.Background())}
	}
}

// checkSigninHealth probes the API for the sign-in view
func checkSigninHealth(client *docai.Client) tea.Cmd {
	return func() tea.Msg {
		return signinHealthMsg{err: client.Health(context.Background())}
	}
}

// uploadFile uploads the file at position index of the batch snapshot. Files
// go up one at a time: the result message for file k triggers the command for
// file k+1, so uploads never run concurrently.
func uploadFile(client *docai.Client, path string, index int) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadFailedMsg{err: err}
		}
		defer f.Close()

		name := filepath.Base(path)
		sessionID, err := client.Upload(context.Background(), name, f)
		if err != nil {
			return uploadFailedMsg{err: err}
		}
		return fileUploadedMsg{index: index, name: name, sessionID: sessionID}
	}
}

// ask submits a question against the active session
func ask(client *docai.Client, sessionID, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := client.Ask(context.Background(), sessionID, question)
		return askResultMsg{answer: answer, err: err}
	}
}

// progressTick schedules the next cosmetic progress step. The chain stops
// re-arming once the upload it animates is no longer running.
func progressTick() tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

// sessionTick schedules the next countdown/expiry check
func sessionTick() tea.Cmd {
	return tea.Tick(sessionInterval, func(t time.Time) tea.Msg {
		return sessionTickMsg(t)
	})
}
