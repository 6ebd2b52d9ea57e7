// Package chat_tui is the full-screen chat application: age gate,
// persona select, metered chat and the paywall overlay. The screen
// logic lives in pkg/chat; this package only wires it to terminal
// input, rendering and the backend.
package chat_tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/codersam0220/gf-frontend/pkg/api"
	"github.com/codersam0220/gf-frontend/pkg/chat"
	"github.com/codersam0220/gf-frontend/pkg/identity"
)

// Deps is everything the TUI needs from the outside.
type Deps struct {
	Controller *chat.Controller
	Identity   *identity.Resolver
	Client     *api.Client
	Initiator  *chat.Initiator
	// Seed for the next chat entry, from the auth state resolved at
	// startup. Refreshed on every chat entry.
	Seed chat.Seed
	// Authed switches the paywall wording between sign-up and
	// buy-credits.
	Authed bool
}

// Model is the bubbletea model for the chat application.
type Model struct {
	ctrl      *chat.Controller
	ids       *identity.Resolver
	client    *api.Client
	initiator *chat.Initiator

	seed   chat.Seed
	authed bool
	gender chat.Gender

	keys    KeyMap
	input   textinput.Model
	spin    spinner.Model
	cursor  int
	width   int
	height  int
	lastErr string

	log *logrus.Entry
}

// New creates the chat TUI model.
func New(deps Deps) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 500
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		ctrl:      deps.Controller,
		ids:       deps.Identity,
		client:    deps.Client,
		initiator: deps.Initiator,
		seed:      deps.Seed,
		authed:    deps.Authed,
		keys:      NewKeyMap(),
		input:     input,
		spin:      spin,
		log:       logrus.WithField("component", "chat_tui"),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// genderAt maps the select-screen cursor to a gender choice.
func genderAt(cursor int) chat.Gender {
	if cursor == 1 {
		return chat.GenderMale
	}
	return chat.GenderFemale
}
