package chat

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/codersam0220/gf-frontend/pkg/api"
)

// SessionBackend is the slice of the backend the initiator needs.
type SessionBackend interface {
	CreatePersona(ctx context.Context, req api.CreatePersonaRequest) (*api.Persona, error)
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.Session, error)
}

// Handle identifies a provisioned chat session.
type Handle struct {
	SessionID int64
	Persona   PersonaConfig
}

// Initiator provisions a persona and a session for one persona pick.
// It performs no retries and is not idempotent: calling Start twice
// creates two personas and two sessions.
type Initiator struct {
	backend SessionBackend
	anonID  string
	log     *logrus.Entry
}

// NewInitiator creates an initiator for the given backend and resolved
// anonymous id.
func NewInitiator(backend SessionBackend, anonID string) *Initiator {
	return &Initiator{
		backend: backend,
		anonID:  anonID,
		log:     logrus.WithField("component", "initiator"),
	}
}

// Start provisions, in order, a persona from the fixed configuration
// table and a session bound to it. The counterpart's gender is sent as
// the opposite of the persona's.
func (i *Initiator) Start(ctx context.Context, choice Gender) (Handle, error) {
	cfg := PersonaFor(choice)

	persona, err := i.backend.CreatePersona(ctx, api.CreatePersonaRequest{
		Name:          cfg.Name,
		PersonaGender: string(cfg.Gender),
		Personality:   cfg.Personality,
		SpeechStyle:   cfg.SpeechStyle,
		AnonID:        i.anonID,
	})
	if err != nil {
		return Handle{}, fmt.Errorf("provision persona: %w", err)
	}

	session, err := i.backend.CreateSession(ctx, api.CreateSessionRequest{
		PersonaID:  persona.ID,
		UserGender: string(Opposite(cfg.Gender)),
		AnonID:     i.anonID,
	})
	if err != nil {
		return Handle{}, fmt.Errorf("provision session: %w", err)
	}

	i.log.WithFields(logrus.Fields{
		"persona_id": persona.ID,
		"session_id": session.SessionID,
	}).Debug("session ready")

	return Handle{SessionID: session.SessionID, Persona: cfg}, nil
}
