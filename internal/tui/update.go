package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tutorchat/internal/domain"
	"tutorchat/internal/usecase"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		// The in-flight user turn lands in the store before the reply
		// arrives; keep the viewport in step with it.
		m.refreshTranscript()
		m.transcript.GotoBottom()
		return m, cmd

	case sendResultMsg:
		m.pending = false
		if msg.err != nil {
			m.status = sendErrorStatus(msg.err)
		} else {
			m.status = ""
		}
		m.refreshTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.focus {
		case focusSubjects:
			return m.updateSubjects(msg)
		case focusSessions:
			return m.updateSessions(msg)
		case focusAPIKey:
			return m.updateAPIKey(msg)
		default:
			return m.updateCompose(msg)
		}
	}
	return m, nil
}

func (m *Model) layout() {
	sidebar := sidebarWidth(m.width)
	m.transcript.Width = m.width - sidebar - 2
	m.transcript.Height = m.height - 5
	if m.transcript.Height < 1 {
		m.transcript.Height = 1
	}
	m.compose.Width = m.width - 6
	m.keyInput.Width = m.width - 12
}

// refreshTranscript re-reads the current session from the store and
// re-renders the viewport content.
func (m *Model) refreshTranscript() {
	cur, ok := m.store.Current()
	if !ok {
		m.transcript.SetContent(dimStyle.Render("No session selected. Press n to start one."))
		return
	}
	m.transcript.SetContent(renderTranscript(cur, m.renderer))
}

func (m Model) updateSubjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.subjectCursor > 0 {
			m.subjectCursor--
		}
	case "down", "j":
		if m.subjectCursor < len(domain.Subjects)-1 {
			m.subjectCursor++
		}
	case "enter":
		m.store.Create(domain.Subjects[m.subjectCursor])
		m.sessionCursor = 0
		m.focus = focusCompose
		m.compose.Focus()
		m.status = ""
		m.refreshTranscript()
		return m, nil
	case "esc":
		if m.store.Len() > 0 {
			m.focus = focusCompose
			m.compose.Focus()
		}
	}
	return m, nil
}

func (m Model) updateSessions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.store.List()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
	case "down", "j":
		if m.sessionCursor < len(sessions)-1 {
			m.sessionCursor++
		}
	case "enter":
		if len(sessions) > 0 {
			if err := m.store.Select(sessions[m.sessionCursor].ID); err == nil {
				m.focus = focusCompose
				m.compose.Focus()
				m.refreshTranscript()
			}
		}
	case "d", "delete":
		if len(sessions) > 0 {
			m.store.Delete(sessions[m.sessionCursor].ID)
			if m.sessionCursor >= m.store.Len() && m.sessionCursor > 0 {
				m.sessionCursor--
			}
			m.refreshTranscript()
		}
	case "n":
		m.focus = focusSubjects
	case "esc", "tab":
		m.focus = focusCompose
		m.compose.Focus()
	}
	return m, nil
}

func (m Model) updateAPIKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.cfg.SetAPIKey(m.keyInput.Value()); err != nil {
			m.status = "Could not save API key: " + err.Error()
			return m, nil
		}
		m.keyInput.SetValue("")
		m.keyInput.Blur()
		if m.cfg.APIKey() == "" {
			m.status = "API key cleared"
		} else {
			m.status = "API key saved"
		}
		m.focus = focusSubjects
		if m.store.Len() > 0 {
			m.focus = focusCompose
			m.compose.Focus()
		}
		return m, nil
	case "ctrl+t":
		// Masked/unmasked toggle for the credential entry.
		if m.keyInput.EchoMode == textinput.EchoPassword {
			m.keyInput.EchoMode = textinput.EchoNormal
		} else {
			m.keyInput.EchoMode = textinput.EchoPassword
		}
		return m, nil
	case "esc":
		m.keyInput.SetValue("")
		m.keyInput.Blur()
		m.focus = focusSubjects
		if m.store.Len() > 0 {
			m.focus = focusCompose
			m.compose.Focus()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		content := m.compose.Value()
		if m.pending || content == "" {
			return m, nil
		}
		m.pending = true
		m.compose.SetValue("")
		m.status = ""
		m.refreshTranscript()
		return m, tea.Batch(m.sendCmd(content), m.spin.Tick)
	case "ctrl+n":
		m.focus = focusSubjects
		m.compose.Blur()
		return m, nil
	case "ctrl+s", "tab":
		m.focus = focusSessions
		m.compose.Blur()
		return m, nil
	case "ctrl+k":
		m.focus = focusAPIKey
		m.compose.Blur()
		m.keyInput.Focus()
		return m, nil
	case "esc":
		m.compose.Blur()
		m.focus = focusSessions
		return m, nil
	case "up", "pgup":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	case "down", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

// sendErrorStatus maps controller precondition errors to status-bar hints.
// Remote failures never land here; the service turns those into assistant
// messages.
func sendErrorStatus(err error) string {
	switch {
	case errors.Is(err, usecase.ErrNoSession):
		return "Start a session first (press n)"
	case errors.Is(err, usecase.ErrNoCredential):
		return "Set your API key first (ctrl+k)"
	case errors.Is(err, usecase.ErrBusy):
		return "Still waiting on the previous reply"
	case errors.Is(err, usecase.ErrEmptyMessage):
		return ""
	}
	return "Send failed: " + err.Error()
}
