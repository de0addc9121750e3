package usecase

import "tutorchat/internal/domain"

// buildPromptMessages assembles the outbound conversation: the subject's
// prompt template travels as a leading user-role turn (the endpoint has no
// system role in this integration), followed by the full stored history.
// The history already ends with the just-appended user message, so it is
// not repeated as an extra final turn.
func buildPromptMessages(template string, history []domain.Message) []domain.ChatMessage {
	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, domain.ChatMessage{
		Role:    string(domain.RoleUser),
		Content: template,
	})
	for _, m := range history {
		messages = append(messages, domain.ChatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return messages
}
