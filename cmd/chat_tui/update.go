package chat_tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codersam0220/gf-frontend/pkg/chat"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.ctrl.Connecting() && !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case timerTickMsg:
		if m.ctrl.Tick(msg.gen) {
			return m, timerTick(msg.gen)
		}
		return m, nil

	case seedRefreshedMsg:
		if msg.gen == m.ctrl.VisitGen() {
			m.seed = msg.seed
			m.authed = msg.authed
		}
		m.ctrl.Reseed(msg.gen, msg.seed)
		return m, nil

	case sessionReadyMsg:
		m.ctrl.SessionReady(msg.gen, msg.handle)
		return m, nil

	case sessionFailedMsg:
		m.log.WithError(msg.err).Warn("session provisioning failed")
		if msg.gen == m.ctrl.VisitGen() {
			m.lastErr = msg.err.Error()
		}
		m.ctrl.SessionFailed(msg.gen)
		return m, nil

	case replyMsg:
		m.ctrl.ApplyReply(msg.gen, msg.reply, msg.credits)
		return m, nil

	case paymentRequiredMsg:
		m.ctrl.ApplyPaymentRequired(msg.gen)
		return m, nil

	case sendFailedMsg:
		m.log.WithError(msg.err).Warn("send failed")
		m.ctrl.ApplySendFailure(msg.gen)
		return m, nil
	}

	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.ctrl.Screen() {
	case chat.ScreenAgeCheck:
		return m.handleAgeCheckKey(msg)
	case chat.ScreenSelect:
		return m.handleSelectKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleAgeCheckKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.ctrl.ConfirmAge()
		if err := m.ids.SetAgeVerified(); err != nil {
			// Not fatal: the gate will simply show again next run.
			m.log.WithError(err).Warn("could not persist age confirmation")
		}
		return m, nil
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < 1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Pick):
		m.gender = genderAt(m.cursor)
		m.lastErr = ""
		m.input.Reset()
		m.ctrl.EnterChat(m.seed)
		gen := m.ctrl.VisitGen()
		return m, tea.Batch(
			startSessionCmd(gen, m.initiator, m.gender),
			refreshSeedCmd(gen, m.ids, m.client),
			m.spin.Tick,
		)
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.ctrl.Back()
		m.input.Reset()
		return m, nil
	}

	if m.ctrl.Failed() && key.Matches(msg, m.keys.Retry) {
		if m.ctrl.Retry() {
			return m, tea.Batch(startSessionCmd(m.ctrl.VisitGen(), m.initiator, m.gender), m.spin.Tick)
		}
		return m, nil
	}

	// The paywall leaves only navigation available.
	if m.ctrl.TimeUp() {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Send) {
		text := strings.TrimSpace(m.input.Value())
		startTimer, ok := m.ctrl.BeginSend(text)
		if !ok {
			return m, nil
		}
		m.input.Reset()
		cmds := []tea.Cmd{
			sendMessageCmd(m.ctrl.VisitGen(), m.client, m.ctrl.SessionID(), text),
			m.spin.Tick,
		}
		if startTimer {
			cmds = append(cmds, timerTick(m.ctrl.VisitGen()))
		}
		return m, tea.Batch(cmds...)
	}

	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
