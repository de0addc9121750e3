package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is the provider-agnostic chat message shape used by the prompt
// builder and LLM integrations.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message is a single conversation turn. Immutable once created.
type Message struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
}

// NewMessage constructs a Message with a fresh id and the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now(),
	}
}

// ChatSession is one conversation thread tied to a subject. Messages are
// append-only; their slice order is the conversation order.
type ChatSession struct {
	ID        string
	Title     string
	Subject   string
	Messages  []Message
	CreatedAt time.Time
}

// WithMessage returns a copy of the session with msg appended. The receiver
// is never mutated; callers replace the stored value with the result.
func (s ChatSession) WithMessage(msg Message) ChatSession {
	msgs := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(msgs, s.Messages)
	s.Messages = append(msgs, msg)
	return s
}
