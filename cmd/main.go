package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tutorchat/internal/config"
	"tutorchat/internal/integrations/gemini"
	"tutorchat/internal/session"
	"tutorchat/internal/tui"
	"tutorchat/internal/usecase"
)

func main() {
	// ---- Configuration (read once here, persisted on change) ----
	cfgStore, err := config.Open()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	geminiClient, err := gemini.NewClient(cfgStore.Model())
	if err != nil {
		slog.Error("failed to create gemini client", "err", err)
		os.Exit(1)
	}
	sessionStore := session.NewStore()

	chatService, err := usecase.NewChatService(sessionStore, geminiClient, cfgStore)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	// ---- TUI ----
	program := tea.NewProgram(
		tui.New(sessionStore, chatService, cfgStore),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		slog.Error("program failed", "err", err)
		os.Exit(1)
	}
}
