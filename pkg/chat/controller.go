// Package chat holds the client-side core: the fixed persona table,
// the session initiator and the metered chat controller. The
// controller is a pure state machine; all I/O and timing is driven
// from the outside (the TUI), which keeps the credit/timer rules
// testable in isolation.
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/codersam0220/gf-frontend/pkg/api"
)

// FreeSeconds is the allowance seeded for anonymous users.
const FreeSeconds = 180

// FallbackReply is shown in place of an assistant turn when a send
// fails on the network; the conversation continues.
const FallbackReply = "Something went wrong 😢"

// Screen is the top-level screen the controller is on.
type Screen int

const (
	ScreenAgeCheck Screen = iota
	ScreenSelect
	ScreenChat
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the in-memory transcript. Held only for the
// duration of the chat screen.
type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Seed is the countdown initialization for one chat entry.
type Seed struct {
	// Seconds the countdown starts from. Ignored when TimerExempt.
	Seconds int
	// TimerExempt disables the countdown entirely (admins).
	TimerExempt bool
}

// SeedFor derives the countdown seed from the current auth state:
// authenticated non-admins get their credit balance, admins are
// exempt, everyone else gets the free allowance.
func SeedFor(user *api.User) Seed {
	switch {
	case user == nil:
		return Seed{Seconds: FreeSeconds}
	case user.IsAdmin:
		return Seed{TimerExempt: true}
	default:
		return Seed{Seconds: user.Credits}
	}
}

// reconcile applies the server-wins rule: a confirmed balance from the
// backend overwrites the local prediction unconditionally; absence
// means no override.
func reconcile(predicted int, confirmed *int) int {
	if confirmed != nil {
		return *confirmed
	}
	return predicted
}

// Controller owns screen state, the message list and the countdown.
// It is confined to a single chat-screen lifetime; nothing is shared
// across instances.
type Controller struct {
	screen Screen
	seed   Seed

	sessionID  int64
	persona    PersonaConfig
	connecting bool
	failed     bool

	messages    []Message
	loading     bool
	started     bool
	timeUp      bool
	secondsLeft int

	// visitGen identifies the current chat-screen lifetime. Timer
	// ticks and asynchronous results (session handles, replies, send
	// failures) are stamped with it and dropped on mismatch, so
	// leaving and re-entering the screen can never double-decrement
	// the countdown, install a stale session handle or leak turns
	// from a previous visit into a fresh transcript.
	visitGen int

	now func() time.Time
}

// NewController starts on the age gate, or directly on persona select
// when the gate was already confirmed on this device.
func NewController(ageVerified bool) *Controller {
	screen := ScreenAgeCheck
	if ageVerified {
		screen = ScreenSelect
	}
	return &Controller{screen: screen, now: time.Now}
}

// ConfirmAge moves past the age gate.
func (c *Controller) ConfirmAge() {
	if c.screen == ScreenAgeCheck {
		c.screen = ScreenSelect
	}
}

// EnterChat switches to the chat screen optimistically: the screen is
// shown while the session is still being provisioned. The countdown is
// seeded here but does not start ticking until the first send.
func (c *Controller) EnterChat(seed Seed) {
	c.screen = ScreenChat
	c.seed = seed
	c.connecting = true
	c.failed = false
	c.sessionID = 0
	c.persona = PersonaConfig{}
	c.messages = nil
	c.loading = false
	c.started = false
	c.timeUp = false
	c.secondsLeft = seed.Seconds
	c.visitGen++
}

// Reseed replaces the countdown seed with a freshly fetched balance.
// Only meaningful before the first send; once the countdown is running
// the server-wins reconciliation is the only correction channel.
func (c *Controller) Reseed(gen int, seed Seed) {
	if gen != c.visitGen {
		return
	}
	if c.screen != ScreenChat || c.started {
		return
	}
	c.seed = seed
	c.secondsLeft = seed.Seconds
}

// SessionReady records the provisioned session handle. Handles stamped
// with a previous visit generation are dropped.
func (c *Controller) SessionReady(gen int, h Handle) {
	if gen != c.visitGen {
		return
	}
	if c.screen != ScreenChat {
		return
	}
	c.connecting = false
	c.failed = false
	c.sessionID = h.SessionID
	c.persona = h.Persona
}

// SessionFailed marks provisioning as failed. The user can retry or
// navigate back; there is no perpetual connecting state.
func (c *Controller) SessionFailed(gen int) {
	if gen != c.visitGen {
		return
	}
	if c.screen != ScreenChat {
		return
	}
	c.connecting = false
	c.failed = true
}

// Retry re-arms the connecting state after a provisioning failure.
// Returns false when there is nothing to retry.
func (c *Controller) Retry() bool {
	if c.screen != ScreenChat || !c.failed {
		return false
	}
	c.failed = false
	c.connecting = true
	return true
}

// Back leaves the chat screen, discarding the session handle, the
// transcript and all timer state. There is no resume.
func (c *Controller) Back() {
	if c.screen != ScreenChat {
		return
	}
	c.screen = ScreenSelect
	c.seed = Seed{}
	c.sessionID = 0
	c.persona = PersonaConfig{}
	c.connecting = false
	c.failed = false
	c.messages = nil
	c.loading = false
	c.started = false
	c.timeUp = false
	c.secondsLeft = 0
	c.visitGen++
}

// BeginSend appends the user's turn and marks a send in flight.
// startTimer reports whether this send starts the countdown (first
// send, non-exempt user). ok is false while another send is pending,
// after time is up, before the session is ready, or for blank input;
// callers must treat that as a no-op.
func (c *Controller) BeginSend(text string) (startTimer, ok bool) {
	text = strings.TrimSpace(text)
	if c.screen != ScreenChat || c.connecting || c.failed || c.loading || c.timeUp || text == "" {
		return false, false
	}

	c.messages = append(c.messages, Message{Role: RoleUser, Content: text, CreatedAt: c.now()})
	c.loading = true

	if !c.started {
		c.started = true
		startTimer = !c.seed.TimerExempt
	}
	return startTimer, true
}

// ApplyReply records the assistant's turn and reconciles the countdown
// against the server-reported balance when present. A balance of zero
// or less forces the paywall regardless of the local timer. Replies
// stamped with a previous visit generation are dropped.
func (c *Controller) ApplyReply(gen int, reply string, creditsRemaining *int) {
	if gen != c.visitGen {
		return
	}
	c.loading = false
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: reply, CreatedAt: c.now()})

	c.secondsLeft = reconcile(c.secondsLeft, creditsRemaining)
	if creditsRemaining != nil && *creditsRemaining <= 0 {
		c.secondsLeft = 0
		c.timeUp = true
	}
}

// ApplyPaymentRequired handles a 402 on send: the paywall is forced
// and no assistant turn is appended.
func (c *Controller) ApplyPaymentRequired(gen int) {
	if gen != c.visitGen {
		return
	}
	c.loading = false
	c.secondsLeft = 0
	c.timeUp = true
}

// ApplySendFailure recovers a failed send locally with a fallback
// assistant turn; the conversation continues.
func (c *Controller) ApplySendFailure(gen int) {
	if gen != c.visitGen {
		return
	}
	c.loading = false
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: FallbackReply, CreatedAt: c.now()})
}

// Tick applies one second of local countdown prediction. gen must
// match the controller's current visit generation; stale ticks from a
// previous chat-screen lifetime are ignored. The return value reports
// whether the timer should keep running.
func (c *Controller) Tick(gen int) bool {
	if gen != c.visitGen {
		return false
	}
	if c.screen != ScreenChat || !c.started || c.timeUp || c.seed.TimerExempt {
		return false
	}

	c.secondsLeft--
	if c.secondsLeft <= 0 {
		c.secondsLeft = 0
		c.timeUp = true
		return false
	}
	return true
}

// Screen returns the current top-level screen.
func (c *Controller) Screen() Screen { return c.screen }

// Messages returns the in-memory transcript, newest last.
func (c *Controller) Messages() []Message { return c.messages }

// SessionID returns the active session handle, 0 while connecting.
func (c *Controller) SessionID() int64 { return c.sessionID }

// Persona returns the active persona configuration.
func (c *Controller) Persona() PersonaConfig { return c.persona }

// Connecting reports whether session provisioning is in flight.
func (c *Controller) Connecting() bool { return c.connecting }

// Failed reports whether session provisioning failed.
func (c *Controller) Failed() bool { return c.failed }

// Loading reports whether a send is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Started reports whether the first message was sent.
func (c *Controller) Started() bool { return c.started }

// TimeUp reports whether the paywall is active.
func (c *Controller) TimeUp() bool { return c.timeUp }

// SecondsLeft returns the current countdown value.
func (c *Controller) SecondsLeft() int { return c.secondsLeft }

// VisitGen returns the current visit generation, to be carried by
// scheduled ticks and asynchronous results.
func (c *Controller) VisitGen() int { return c.visitGen }

// TimerVisible reports whether the countdown should be rendered:
// never before the first send and never for exempt users.
func (c *Controller) TimerVisible() bool {
	return c.started && !c.seed.TimerExempt
}

// FormatCountdown renders seconds as m:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
