package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tutorchat/internal/domain"
)

func sidebarWidth(total int) int {
	w := total / 4
	if w < 24 {
		w = 24
	}
	if w > 36 {
		w = 36
	}
	return w
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("tutorchat"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d sessions", m.store.Len())))
	b.WriteString("\n")

	sidebar := m.viewSidebar()
	main := m.transcript.View()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Width(sidebarWidth(m.width)).Height(m.transcript.Height).Render(sidebar),
		main,
	))
	b.WriteString("\n")
	b.WriteString(m.viewInput())
	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewSidebar() string {
	if m.focus == focusSubjects {
		return m.viewSubjectPicker()
	}
	return m.viewSessionList()
}

func (m Model) viewSubjectPicker() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Pick a subject") + "\n\n")
	for i, subj := range domain.Subjects {
		line := fmt.Sprintf("%s %s", subj.Icon, subj.Name)
		if i == m.subjectCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(normalStyle.Render(subjectTagStyle(subj.ColorTag).Render(line)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: start  esc: back"))
	return b.String()
}

func (m Model) viewSessionList() string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Sessions") + "\n\n")
	sessions := m.store.List()
	if len(sessions) == 0 {
		b.WriteString(helpStyle.Render("none yet — press n"))
		return b.String()
	}
	current, hasCurrent := m.store.Current()
	for i, sess := range sessions {
		subj := domain.SubjectByID(sess.Subject)
		marker := "  "
		if hasCurrent && sess.ID == current.ID {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s %s", marker, subj.Icon, sess.Title)
		if m.focus == focusSessions && i == m.sessionCursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(normalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: open  d: delete  n: new"))
	return b.String()
}

func (m Model) viewInput() string {
	if m.focus == focusAPIKey {
		return inputStyle.Width(m.width).Render(m.keyInput.View() + helpStyle.Render("  (ctrl+t: show/hide, esc: cancel)"))
	}
	if m.pending {
		return inputStyle.Width(m.width).Render(m.spin.View() + dimStyle.Render(" tutor is typing..."))
	}
	return inputStyle.Width(m.width).Render(m.compose.View())
}

func (m Model) viewStatusBar() string {
	status := m.status
	if status == "" {
		status = "enter: send  tab: sessions  ctrl+n: new  ctrl+k: api key  ctrl+c: quit"
	}
	return statusBarStyle.Width(m.width).Render(status)
}
