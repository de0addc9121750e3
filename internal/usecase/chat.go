package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tutorchat/internal/domain"
	"tutorchat/internal/integrations/gemini"
)

// Generator produces an assistant reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, apiKey string, messages []domain.ChatMessage) (string, error)
}

// SessionStore is the slice of the session store the controller needs.
type SessionStore interface {
	Current() (domain.ChatSession, bool)
	Append(sessionID string, msg domain.Message) (domain.ChatSession, error)
}

// CredentialSource hands out the completion endpoint credential.
type CredentialSource interface {
	APIKey() string
}

// ChatService orchestrates one conversation turn: append the user message,
// call the completion endpoint, append the reply or a classified failure
// message. Remote failures never surface as errors; they become ordinary
// assistant turns so the conversation stays usable.
type ChatService struct {
	store SessionStore
	llm   Generator
	creds CredentialSource

	mu       sync.Mutex
	inFlight bool
}

// NewChatService creates a ChatService.
func NewChatService(store SessionStore, llm Generator, creds CredentialSource) (*ChatService, error) {
	if store == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if creds == nil {
		return nil, errors.New("usecase: credential source must not be nil")
	}
	return &ChatService{store: store, llm: llm, creds: creds}, nil
}

// Pending reports whether a send is currently awaiting the remote endpoint.
func (s *ChatService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *ChatService) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *ChatService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Send runs one conversation turn against the current session and returns
// the session as it stands afterwards. Precondition failures (no session,
// no credential, blank input, a send already in flight) return a sentinel
// error before anything is appended.
func (s *ChatService) Send(ctx context.Context, content string) (domain.ChatSession, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ChatSession{}, ErrEmptyMessage
	}
	cur, ok := s.store.Current()
	if !ok {
		return domain.ChatSession{}, ErrNoSession
	}
	apiKey := strings.TrimSpace(s.creds.APIKey())
	if apiKey == "" {
		return domain.ChatSession{}, ErrNoCredential
	}
	if !s.begin() {
		return domain.ChatSession{}, ErrBusy
	}
	defer s.end()

	updated, err := s.store.Append(cur.ID, domain.NewMessage(domain.RoleUser, content))
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("usecase: append user message: %w", err)
	}

	subject := domain.SubjectByID(updated.Subject)
	reply, genErr := s.llm.Generate(ctx, apiKey, buildPromptMessages(subject.PromptTemplate, updated.Messages))
	text := reply
	if genErr != nil {
		text = failureText(classifyFailure(genErr))
	}

	final, err := s.store.Append(updated.ID, domain.NewMessage(domain.RoleAssistant, text))
	if err != nil {
		return domain.ChatSession{}, fmt.Errorf("usecase: append assistant message: %w", err)
	}
	return final, nil
}

// classifyFailure folds a generate error into the controller taxonomy. The
// gemini client already categorizes endpoint failures structurally; anything
// else (transport faults, malformed bodies) is upstream.
func classifyFailure(err error) *Error {
	var statusErr *gemini.StatusError
	if errors.As(err, &statusErr) {
		code := ErrorUpstream
		switch statusErr.Category {
		case gemini.CategoryInvalidCredential:
			code = ErrorInvalidCredential
		case gemini.CategoryRateLimited:
			code = ErrorRateLimited
		case gemini.CategoryQuotaExceeded:
			code = ErrorQuotaExceeded
		}
		return &Error{Code: code, Reason: "generate_failed", Err: err}
	}
	return &Error{Code: ErrorUpstream, Reason: "generate_failed", Err: err}
}

// failureText renders a classified failure as the user-facing assistant
// message appended in place of a reply.
func failureText(e *Error) string {
	switch e.Code {
	case ErrorInvalidCredential:
		return "Invalid API key. Please check your Gemini API key and try again."
	case ErrorRateLimited:
		return "Rate limit exceeded. Please wait a moment and try again."
	case ErrorQuotaExceeded:
		return "API quota exceeded. Please check your Google Cloud billing."
	}
	var statusErr *gemini.StatusError
	if errors.As(e.Err, &statusErr) {
		return fmt.Sprintf("Error: %s (Status: %d)", statusErr.Message, statusErr.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("Error: %v", e.Err)
	}
	return "Sorry, I encountered an error. Please try again."
}
