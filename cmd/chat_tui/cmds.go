package chat_tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codersam0220/gf-frontend/pkg/api"
	"github.com/codersam0220/gf-frontend/pkg/chat"
	"github.com/codersam0220/gf-frontend/pkg/identity"
)

// Message types. Each result of an asynchronous command carries the
// visit generation it was started under; the controller drops results
// whose generation no longer matches.
type sessionReadyMsg struct {
	gen    int
	handle chat.Handle
}
type sessionFailedMsg struct {
	gen int
	err error
}
type seedRefreshedMsg struct {
	gen    int
	seed   chat.Seed
	authed bool
}
type replyMsg struct {
	gen     int
	reply   string
	credits *int
}
type paymentRequiredMsg struct{ gen int }
type sendFailedMsg struct {
	gen int
	err error
}
type timerTickMsg struct{ gen int }

// startSessionCmd provisions a persona and session for the pick.
func startSessionCmd(gen int, initiator *chat.Initiator, choice chat.Gender) tea.Cmd {
	return func() tea.Msg {
		handle, err := initiator.Start(context.Background(), choice)
		if err != nil {
			return sessionFailedMsg{gen: gen, err: err}
		}
		return sessionReadyMsg{gen: gen, handle: handle}
	}
}

// refreshSeedCmd re-reads the auth state so each chat entry is seeded
// from the then-current balance.
func refreshSeedCmd(gen int, ids *identity.Resolver, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user := ids.CurrentUser(ctx, client)
		return seedRefreshedMsg{gen: gen, seed: chat.SeedFor(user), authed: user != nil}
	}
}

// sendMessageCmd posts one user turn.
func sendMessageCmd(gen int, client *api.Client, sessionID int64, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.SendMessage(context.Background(), sessionID, text)
		if err != nil {
			if errors.Is(err, api.ErrPaymentRequired) {
				return paymentRequiredMsg{gen: gen}
			}
			return sendFailedMsg{gen: gen, err: err}
		}
		return replyMsg{gen: gen, reply: reply.Reply, credits: reply.CreditsRemaining}
	}
}

// timerTick schedules the next one-second countdown tick, stamped with
// the controller's visit generation so ticks from a previous chat
// visit are ignored.
func timerTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
