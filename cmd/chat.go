package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/codersam0220/gf-frontend/cmd/chat_tui"
	"github.com/codersam0220/gf-frontend/pkg/chat"
)

// NewChatCmd launches the full-screen chat application.
func NewChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start a chat session",
		Long: `Opens the full-screen chat: confirm the age gate, pick a persona and
start talking. Anonymous users get a free time allowance; logged-in
users chat against their credit balance.`,
		RunE: runChat,
	}
	chatCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL (defaults to GF_API_URL or the production backend)")
	return chatCmd
}

func runChat(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("chat needs an interactive terminal")
	}

	ids, err := newResolver()
	if err != nil {
		return err
	}
	client, err := newClient(ids)
	if err != nil {
		return err
	}

	anonID, err := ids.AnonymousID()
	if err != nil {
		return fmt.Errorf("resolve anonymous id: %w", err)
	}

	ageVerified, err := ids.AgeVerified()
	if err != nil {
		return err
	}

	// Resolve auth state up front; a rejected token just means an
	// anonymous session.
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	user := ids.CurrentUser(ctx, client)

	model := chat_tui.New(chat_tui.Deps{
		Controller: chat.NewController(ageVerified),
		Identity:   ids,
		Client:     client,
		Initiator:  chat.NewInitiator(client, anonID),
		Seed:       chat.SeedFor(user),
		Authed:     user != nil,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run chat ui: %w", err)
	}
	return nil
}
