package docai

import (
	"errors"
	"fmt"
)

// healthMarker is the body value that distinguishes a healthy API from any
// other server answering on the same port.
const healthMarker = "success"

// sessionInvalidPhrase is the fragment the server includes in error text when
// a session is no longer usable. The server is authoritative here and may
// reject a session before the client-side clock says it expired.
const sessionInvalidPhrase = "Invalid or expired session"

// ErrNoSessionID is returned when an upload succeeds at the HTTP level but the
// response carries no session identifier.
var ErrNoSessionID = errors.New("no session ID received from server")

// ErrSessionInvalid is returned when the server reports the session invalid or
// expired.
var ErrSessionInvalid = errors.New("invalid or expired session")

// HealthResponse is the body of GET /healthcare.
type HealthResponse struct {
	Message string `json:"message"`
}

// UploadResponse is the body of POST /upload.
type UploadResponse struct {
	SessionID string `json:"session_id"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// AskResponse is the body of POST /ask. On failure the server sets Error
// instead of Answer.
type AskResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

// APIError carries the error text returned by the API alongside the HTTP
// status it arrived with.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: status %d", e.StatusCode)
	}
	return e.Message
}
