// Package tui is the terminal presentation layer: a bubbletea program that
// projects the session store onto the screen and feeds user actions into
// the chat service. It keeps no chat state of its own beyond transient
// focus and input toggles.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tutorchat/internal/config"
	"tutorchat/internal/domain"
	"tutorchat/internal/session"
	"tutorchat/internal/usecase"
)

type focusArea int

const (
	focusCompose focusArea = iota
	focusSessions
	focusSubjects
	focusAPIKey
)

// sendResultMsg carries the outcome of a chat service send back onto the
// event loop.
type sendResultMsg struct {
	session domain.ChatSession
	err     error
}

// Model is the bubbletea model for the whole client.
type Model struct {
	store *session.Store
	svc   *usecase.ChatService
	cfg   *config.Store

	compose    textinput.Model
	keyInput   textinput.Model
	spin       spinner.Model
	transcript viewport.Model
	renderer   *glamour.TermRenderer

	focus         focusArea
	subjectCursor int
	sessionCursor int
	pending       bool
	status        string
	width         int
	height        int
	ready         bool
	quitting      bool
}

// New builds the initial model. The credential entry starts focused when no
// API key is configured yet, otherwise the subject picker does.
func New(store *session.Store, svc *usecase.ChatService, cfg *config.Store) Model {
	compose := textinput.New()
	compose.Placeholder = "Ask your tutor..."
	compose.CharLimit = 2000
	compose.Prompt = "> "

	keyInput := textinput.New()
	keyInput.Placeholder = "Gemini API key"
	keyInput.CharLimit = 200
	keyInput.Prompt = "key: "
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '*'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		renderer = nil // fall back to plain text rendering
	}

	m := Model{
		store:    store,
		svc:      svc,
		cfg:      cfg,
		compose:  compose,
		keyInput: keyInput,
		spin:     sp,
		renderer: renderer,
		focus:    focusSubjects,
	}
	if cfg.APIKey() == "" {
		m.focus = focusAPIKey
		m.keyInput.Focus()
		m.status = "Enter your Gemini API key to get started"
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// sendCmd runs a chat turn off the event loop. The service serializes
// overlapping sends itself; the TUI additionally disables the compose input
// while one is pending.
func (m Model) sendCmd(content string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		sess, err := svc.Send(context.Background(), content)
		return sendResultMsg{session: sess, err: err}
	}
}
