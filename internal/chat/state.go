package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/documentai/cli/internal/docai"
)

// ConnStatus is the tri-state API connection status.
type ConnStatus string

const (
	StatusChecking     ConnStatus = "checking"
	StatusConnected    ConnStatus = "connected"
	StatusDisconnected ConnStatus = "disconnected"
)

// Cosmetic upload progress: while an upload is in flight the bar advances in
// fixed increments on a timer, capped below completion. It never reflects
// real bytes transferred.
const (
	ProgressStep = 5
	ProgressCap  = 90
	ProgressDone = 100
)

// UploadedFile is a display record for a file the server accepted into the
// active session.
type UploadedFile struct {
	ID   uuid.UUID
	Name string
}

// State is the page-level chat state. All mutation goes through the
// transition methods below; the UI reads it to render and never writes it
// directly. Methods are not safe for concurrent use — transitions run on the
// single UI event loop.
type State struct {
	APIURL  string
	Status  ConnStatus
	Session *Session

	// Selected is the pending batch: file paths chosen but not yet uploaded.
	Selected []string
	// Uploaded lists files the server has accepted. When the last entry is
	// removed the session is torn down, even if it has time remaining.
	Uploaded []UploadedFile

	Messages []Message

	ChatEnabled bool
	Uploading   bool
	Progress    int
	Processing  bool
}

// NewState creates the initial page state: connection check pending, chat
// disabled, and the conversation seeded with the assistant greeting.
func NewState(apiURL string) *State {
	return &State{
		APIURL:   apiURL,
		Status:   StatusChecking,
		Messages: []Message{NewMessage(RoleAssistant, Greeting)},
	}
}

// append adds a message to the conversation log
func (s *State) append(role Role, content string) {
	s.Messages = append(s.Messages, NewMessage(role, content))
}

// Notify appends a system message outside of any transition, for UI notices
// like command help or a file that could not be found.
func (s *State) Notify(content string) {
	s.append(RoleSystem, content)
}

// --- Connectivity Monitor ---

// BeginConnectionCheck marks a health check as in flight against url. The
// status stays at checking until ResolveConnectionCheck is applied.
func (s *State) BeginConnectionCheck(url string) {
	s.APIURL = url
	s.Status = StatusChecking
}

// ResolveConnectionCheck applies the outcome of a health check. Any non-nil
// error — transport failure, bad status, marker mismatch — lands on
// disconnected; the status is never left at checking. Both outcomes append a
// system message. Returns true on success.
func (s *State) ResolveConnectionCheck(err error) bool {
	if err != nil {
		s.Status = StatusDisconnected
		s.append(RoleSystem, fmt.Sprintf("Failed to connect to API at %s. Please check the URL and ensure the server is running.", s.APIURL))
		return false
	}

	s.Status = StatusConnected
	s.append(RoleSystem, fmt.Sprintf("Successfully connected to API at %s. You can now upload documents and ask questions.", s.APIURL))
	return true
}

// --- Upload Orchestrator ---

// SelectFiles appends newly chosen files to the pending batch. Nothing is
// uploaded until BeginUpload.
func (s *State) SelectFiles(paths ...string) {
	s.Selected = append(s.Selected, paths...)
}

// RemoveSelected removes one pending entry by position
func (s *State) RemoveSelected(i int) {
	if i < 0 || i >= len(s.Selected) {
		return
	}
	s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
}

// BeginUpload starts an upload of the pending batch. It is a no-op unless the
// batch is non-empty and an API URL is configured. Returns true if the upload
// should proceed.
func (s *State) BeginUpload() bool {
	if len(s.Selected) == 0 || s.APIURL == "" || s.Uploading {
		return false
	}
	s.Uploading = true
	s.Progress = 0
	return true
}

// AdvanceProgress moves the cosmetic progress bar one step, capped at
// ProgressCap. Only CompleteUpload takes it to 100.
func (s *State) AdvanceProgress() {
	if !s.Uploading {
		return
	}
	if s.Progress < ProgressCap {
		s.Progress += ProgressStep
	}
	if s.Progress > ProgressCap {
		s.Progress = ProgressCap
	}
}

// FileUploaded records one accepted file. The session identifier from this
// file replaces any prior one — when a batch returns several identifiers, the
// last file wins — and the expiry restarts at now + SessionTTL.
func (s *State) FileUploaded(name, sessionID string, now time.Time) {
	s.Session = NewSession(sessionID, now)
	s.Uploaded = append(s.Uploaded, UploadedFile{ID: uuid.New(), Name: name})
}

// FailUpload aborts the batch: progress resets, the pending batch is left
// unchanged for a retry, and files recorded before the failure stay recorded.
func (s *State) FailUpload(reason string) {
	s.Uploading = false
	s.Progress = 0
	s.append(RoleSystem, fmt.Sprintf("Upload failed: %s. Please try again.", reason))
}

// CompleteUpload finishes a fully successful batch: the pending batch is
// cleared and chat unlocks against the recorded session.
func (s *State) CompleteUpload() {
	s.Uploading = false
	s.Progress = ProgressDone
	s.Selected = nil
	s.ChatEnabled = true
	s.append(RoleSystem, "Your documents have been successfully uploaded and processed. You can now ask questions about them. Note that your session will expire in 1 hour.")
}

// RemoveUploaded removes one uploaded-file record by position. Removing the
// last record tears the session down regardless of time remaining: no
// documents means no session.
func (s *State) RemoveUploaded(i int) {
	if i < 0 || i >= len(s.Uploaded) {
		return
	}
	s.Uploaded = append(s.Uploaded[:i], s.Uploaded[i+1:]...)

	if len(s.Uploaded) == 0 {
		s.Session = nil
		s.ChatEnabled = false
		s.append(RoleSystem, "All documents have been removed. Please upload a new document to continue.")
	}
}

// --- Session Tracker ---

// Tick applies client-side expiry. If the session's expiry instant has
// passed, the session is cleared, chat is disabled, and the user is told.
// Returns true if the session was torn down.
func (s *State) Tick(now time.Time) bool {
	if s.Session == nil || !s.Session.Expired(now) {
		return false
	}
	s.expireSession()
	return true
}

// expireSession clears the session and disables chat. Shared by the
// client-side expiry path and the server-authoritative invalid-session path.
func (s *State) expireSession() {
	s.Session = nil
	s.ChatEnabled = false
	s.append(RoleSystem, "Your session has expired. Please upload a new document to continue.")
}

// --- Conversation Log / Ask flow ---

// BeginAsk validates and starts a question exchange. It is a no-op — nothing
// appended, nothing to send — unless the trimmed question is non-empty, chat
// is enabled, a session exists, and no ask is already in flight. The expiry
// check runs first so a stale session never carries a question. On success
// the user message is appended optimistically and the processing flag is set;
// the caller sends the returned question text.
func (s *State) BeginAsk(question string, now time.Time) (string, bool) {
	question = strings.TrimSpace(question)
	if question == "" || !s.ChatEnabled || s.Processing {
		return "", false
	}
	if s.Tick(now) || s.Session == nil {
		return "", false
	}

	s.append(RoleUser, question)
	s.Processing = true
	return question, true
}

// ResolveAsk applies the outcome of an ask exchange: exactly one message is
// appended — the assistant's answer, the fixed fallback for an empty answer,
// or a system notice for errors. A server-reported invalid session tears the
// session down the same way expiry does. The processing flag clears on every
// path.
func (s *State) ResolveAsk(answer string, err error) {
	defer func() { s.Processing = false }()

	if err == nil {
		if answer == "" {
			s.append(RoleAssistant, FallbackAnswer)
			return
		}
		s.append(RoleAssistant, answer)
		return
	}

	if errors.Is(err, docai.ErrSessionInvalid) {
		s.expireSession()
		return
	}

	var apiErr *docai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "Unknown error occurred"
		}
		s.append(RoleSystem, fmt.Sprintf("Error: %s", msg))
		return
	}

	s.append(RoleSystem, fmt.Sprintf("Failed to send question: %v", err))
}
