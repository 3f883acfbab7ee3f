package chat

import (
	"fmt"
	"time"
)

// SessionTTL is the fixed lifetime of an upload session. The server enforces
// its own expiry; this is the client-side mirror of that policy.
const SessionTTL = time.Hour

// ExpiredLabel is the sentinel Remaining returns once the expiry instant has
// passed.
const ExpiredLabel = "Expired"

// Session is an upload-derived API session: the opaque identifier the server
// returned plus the client-computed expiry.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// NewSession creates a session expiring SessionTTL after now
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		ExpiresAt: now.Add(SessionTTL),
	}
}

// Expired reports whether the session's expiry instant has passed
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Remaining formats the time left as "Xm Ys", or ExpiredLabel when the expiry
// has passed.
func (s *Session) Remaining(now time.Time) string {
	diff := s.ExpiresAt.Sub(now)
	if diff <= 0 {
		return ExpiredLabel
	}

	mins := int(diff.Minutes())
	secs := int(diff.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", mins, secs)
}
