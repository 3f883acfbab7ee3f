package tui

import "time"

// Bubble Tea result messages. Commands perform the network calls and deliver
// exactly one of these back to the event loop, where the corresponding state
// transition is applied.

// healthResultMsg reports the outcome of a chat-view health check.
type healthResultMsg struct {
	err error
}

// signinHealthMsg reports the outcome of the sign-in view's health check.
type signinHealthMsg struct {
	err error
}

// fileUploadedMsg reports one accepted file. index positions the file within
// the batch snapshot so the next sequential upload can be issued.
type fileUploadedMsg struct {
	index     int
	name      string
	sessionID string
}

// uploadFailedMsg aborts the in-flight batch.
type uploadFailedMsg struct {
	err error
}

// askResultMsg reports the outcome of an ask exchange.
type askResultMsg struct {
	answer string
	err    error
}

// progressTickMsg advances the cosmetic upload progress bar.
type progressTickMsg time.Time

// sessionTickMsg drives the session countdown and client-side expiry.
type sessionTickMsg time.Time
