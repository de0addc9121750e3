package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"tutorchat/internal/domain"
)

// renderTranscript formats a session's messages for the viewport. Assistant
// turns go through the markdown renderer when one is available; user turns
// stay plain.
func renderTranscript(sess domain.ChatSession, renderer *glamour.TermRenderer) string {
	if len(sess.Messages) == 0 {
		subj := domain.SubjectByID(sess.Subject)
		return dimStyle.Render(subj.Icon+" "+subj.Name) + "\n" +
			dimStyle.Render(subj.Description)
	}

	var b strings.Builder
	for i, msg := range sess.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case domain.RoleUser:
			b.WriteString(userLabelStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
			b.WriteString("\n")
		default:
			b.WriteString(assistantLabelStyle.Render("Tutor"))
			b.WriteString("\n")
			b.WriteString(renderMarkdown(msg.Content, renderer))
		}
	}
	return b.String()
}

func renderMarkdown(content string, renderer *glamour.TermRenderer) string {
	if renderer == nil {
		return content + "\n"
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}
