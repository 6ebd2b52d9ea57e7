package chat_tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codersam0220/gf-frontend/pkg/chat"
	"github.com/codersam0220/gf-frontend/pkg/identity"
	"github.com/codersam0220/gf-frontend/pkg/storage"
)

func newTestModel(t *testing.T, seed chat.Seed) Model {
	t.Helper()
	ctrl := chat.NewController(true)
	return New(Deps{
		Controller: ctrl,
		Identity:   identity.NewResolver(storage.NewStore(t.TempDir())),
		Initiator:  chat.NewInitiator(nil, "anon-test"),
		Seed:       seed,
	})
}

func TestTimerTickReschedulesWhileRunning(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1})
	_, ok := m.ctrl.BeginSend("hi")
	require.True(t, ok)
	m.ctrl.ApplyReply(m.ctrl.VisitGen(), "hey", nil)

	_, cmd := m.Update(timerTickMsg{gen: m.ctrl.VisitGen()})
	assert.NotNil(t, cmd, "a running timer schedules the next tick")
	assert.Equal(t, 9, m.ctrl.SecondsLeft())
}

func TestStaleTimerTickIsIgnored(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1})
	_, ok := m.ctrl.BeginSend("hi")
	require.True(t, ok)
	staleGen := m.ctrl.VisitGen()

	// Leave and re-enter: the old generation's ticks go dead.
	m.ctrl.Back()
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})

	_, cmd := m.Update(timerTickMsg{gen: staleGen})
	assert.Nil(t, cmd)
	assert.Equal(t, 10, m.ctrl.SecondsLeft())
}

func TestStaleSessionReadyMsgIsIgnored(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	staleGen := m.ctrl.VisitGen()

	// Leave before provisioning completes, then re-enter.
	m.ctrl.Back()
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})

	updated, _ := m.Update(sessionReadyMsg{gen: staleGen, handle: chat.Handle{SessionID: 111}})
	m = updated.(Model)
	assert.True(t, m.ctrl.Connecting(), "the fresh visit keeps waiting for its own handle")
	assert.Zero(t, m.ctrl.SessionID())
	_, ok := m.ctrl.BeginSend("hi")
	assert.False(t, ok)

	updated, _ = m.Update(sessionReadyMsg{gen: m.ctrl.VisitGen(), handle: chat.Handle{SessionID: 222}})
	m = updated.(Model)
	assert.Equal(t, int64(222), m.ctrl.SessionID())
}

func TestStaleReplyMsgIsIgnored(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1})
	_, ok := m.ctrl.BeginSend("hi")
	require.True(t, ok)
	staleGen := m.ctrl.VisitGen()

	// Leave with the send still in flight, then re-enter.
	m.ctrl.Back()
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})

	updated, _ := m.Update(replyMsg{gen: staleGen, reply: "hey"})
	m = updated.(Model)
	assert.Empty(t, m.ctrl.Messages(), "replies to a previous visit never surface")

	updated, _ = m.Update(paymentRequiredMsg{gen: staleGen})
	m = updated.(Model)
	assert.False(t, m.ctrl.TimeUp())

	updated, _ = m.Update(sendFailedMsg{gen: staleGen, err: assert.AnError})
	m = updated.(Model)
	assert.Empty(t, m.ctrl.Messages())
}

func TestPaymentRequiredMsgLocksInput(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1})
	_, ok := m.ctrl.BeginSend("hi")
	require.True(t, ok)

	updated, _ := m.Update(paymentRequiredMsg{gen: m.ctrl.VisitGen()})
	m = updated.(Model)
	assert.True(t, m.ctrl.TimeUp())
	require.Len(t, m.ctrl.Messages(), 1, "no assistant bubble for a 402")

	// Typing keys are swallowed while the paywall is up.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, m.input.Value())
}

func TestPaywallWording(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1, Persona: chat.PersonaFor(chat.GenderFemale)})
	m.ctrl.ApplyPaymentRequired(m.ctrl.VisitGen())

	assert.Contains(t, m.viewPaywall(), "gf register")

	m.authed = true
	assert.Contains(t, m.viewPaywall(), "credits")
	assert.NotContains(t, m.viewPaywall(), "gf register")
}

func TestCountdownHiddenBeforeFirstSend(t *testing.T) {
	m := newTestModel(t, chat.Seed{Seconds: 10})
	m.ctrl.EnterChat(chat.Seed{Seconds: 10})
	m.ctrl.SessionReady(m.ctrl.VisitGen(), chat.Handle{SessionID: 1, Persona: chat.PersonaFor(chat.GenderFemale)})

	assert.NotContains(t, m.viewHeader(), "⏱")

	_, ok := m.ctrl.BeginSend("hi")
	require.True(t, ok)
	assert.Contains(t, m.viewHeader(), "0:10")
}

func TestAgeConfirmationPersists(t *testing.T) {
	store := storage.NewStore(t.TempDir())
	ids := identity.NewResolver(store)
	ctrl := chat.NewController(false)
	m := New(Deps{Controller: ctrl, Identity: ids, Initiator: chat.NewInitiator(nil, "anon-test")})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.Equal(t, chat.ScreenSelect, m.ctrl.Screen())

	verified, err := ids.AgeVerified()
	require.NoError(t, err)
	assert.True(t, verified)
}
