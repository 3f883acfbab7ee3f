// Package chat holds the client-side state for a DocumentAI chat session:
// the conversation log, the upload-derived session, and the page state machine
// that ties them to the remote API. The package does no I/O of its own; every
// network result is applied through a named transition on State, and the UI
// renders as a projection of that state.
package chat

import "github.com/google/uuid"

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Greeting is the assistant message every conversation starts with.
const Greeting = "Hello! I'm DocumentAI. I can help you analyze your documents and answer questions about them. Upload a document to get started."

// FallbackAnswer is shown when the API answers the question with an empty
// answer field.
const FallbackAnswer = "I couldn't find an answer to your question in the provided documents."

// Message is one entry in the conversation log. Entries are append-only and
// never mutated after insertion; display order is insertion order.
type Message struct {
	ID      uuid.UUID
	Role    Role
	Content string
}

// NewMessage creates a message with a generated ID
func NewMessage(role Role, content string) Message {
	return Message{
		ID:      uuid.New(),
		Role:    role,
		Content: content,
	}
}
