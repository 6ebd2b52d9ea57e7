package chat_tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codersam0220/gf-frontend/pkg/chat"
)

const (
	colorAccent  = lipgloss.Color("205") // pink
	colorMuted   = lipgloss.Color("241")
	colorWarning = lipgloss.Color("196") // red
	colorOK      = lipgloss.Color("42")  // green
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	onlineStyle    = lipgloss.NewStyle().Foreground(colorOK)
	timerOKStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	timerLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	userBubble     = lipgloss.NewStyle().Background(colorAccent).Foreground(lipgloss.Color("231")).Padding(0, 1)
	assistBubble   = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252")).Padding(0, 1)
	paywallBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 3).Align(lipgloss.Center)
	screenBox      = lipgloss.NewStyle().Padding(1, 2)
	lowWaterMark   = 30 // seconds left at which the countdown turns red
	maxBubbleWidth = 46
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.ctrl.Screen() {
	case chat.ScreenAgeCheck:
		body = m.viewAgeCheck()
	case chat.ScreenSelect:
		body = m.viewSelect()
	default:
		body = m.viewChat()
	}
	return screenBox.Render(body)
}

func (m Model) viewAgeCheck() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Before we start"))
	b.WriteString("\n\n")
	b.WriteString("This chat is for adults only.\n")
	b.WriteString("Press " + cursorStyle.Render("enter") + " to confirm you are 18 or older.\n\n")
	b.WriteString(mutedStyle.Render("q quit"))
	return b.String()
}

func (m Model) viewSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Who do you want to talk to?"))
	b.WriteString("\n\n")

	options := []chat.Gender{chat.GenderFemale, chat.GenderMale}
	for i, gender := range options {
		cfg := chat.PersonaFor(gender)
		line := fmt.Sprintf("%s · %s", cfg.Name, cfg.Personality)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ choose · enter start · q quit"))
	if !m.authed {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d minutes free · no signup needed", chat.FreeSeconds/60)))
	}
	return b.String()
}

func (m Model) viewChat() string {
	if m.ctrl.Connecting() {
		return fmt.Sprintf("%s Connecting...\n\n%s", m.spin.View(), mutedStyle.Render("esc back"))
	}
	if m.ctrl.Failed() {
		var b strings.Builder
		b.WriteString(errorStyle.Render("Could not reach the server."))
		if m.lastErr != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render(m.lastErr))
		}
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("r retry · esc back"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewMessages())

	if m.ctrl.TimeUp() {
		b.WriteString("\n")
		b.WriteString(m.viewPaywall())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("esc back · q quit"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter send · esc back"))
	return b.String()
}

func (m Model) viewHeader() string {
	name := m.ctrl.Persona().Name
	left := titleStyle.Render(name) + " " + onlineStyle.Render("online")

	if !m.ctrl.TimerVisible() {
		return left
	}

	var timer string
	if m.ctrl.TimeUp() {
		timer = timerLowStyle.Render("⏰ Time's up")
	} else {
		style := timerOKStyle
		if m.ctrl.SecondsLeft() <= lowWaterMark {
			style = timerLowStyle
		}
		timer = style.Render("⏱ " + chat.FormatCountdown(m.ctrl.SecondsLeft()))
	}
	return left + "   " + timer
}

func (m Model) viewMessages() string {
	messages := m.ctrl.Messages()
	if len(messages) == 0 {
		name := m.ctrl.Persona().Name
		return mutedStyle.Render(fmt.Sprintf("Say hi to %s!", name))
	}

	// Keep only what fits; older turns scroll out of view.
	if visible := m.visibleMessageCount(); len(messages) > visible {
		messages = messages[len(messages)-visible:]
	}

	lineWidth := m.width - 4
	if lineWidth < maxBubbleWidth {
		lineWidth = maxBubbleWidth
	}

	var b strings.Builder
	for _, msg := range messages {
		bubble := assistBubble
		align := lipgloss.Left
		if msg.Role == chat.RoleUser {
			bubble = userBubble
			align = lipgloss.Right
		}
		if len(msg.Content) > maxBubbleWidth {
			// Width wraps long messages inside the bubble.
			bubble = bubble.Width(maxBubbleWidth)
		}
		rendered := bubble.Render(msg.Content)
		b.WriteString(lipgloss.PlaceHorizontal(lineWidth, align, rendered))
		b.WriteString("\n")
	}
	if m.ctrl.Loading() {
		b.WriteString(m.spin.View() + mutedStyle.Render(" typing..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) visibleMessageCount() int {
	// Header, input and help take roughly eight rows.
	rows := m.height - 8
	if rows < 4 {
		return 4
	}
	return rows
}

func (m Model) viewPaywall() string {
	name := m.ctrl.Persona().Name
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keep chatting with "+name) + "\n\n")
	if m.authed {
		b.WriteString("Your credits are used up.\n")
		b.WriteString("Buying credits is coming soon — check back shortly.")
	} else {
		b.WriteString("Your free minutes are up.\n")
		b.WriteString("Run " + cursorStyle.Render("gf register") + " to get 100 credits free,\n")
		b.WriteString("or " + cursorStyle.Render("gf login") + " if you already have an account.")
	}
	return paywallBox.Render(b.String())
}
