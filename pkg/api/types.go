package api

import "time"

// Persona is the backend's record of a conversational counterpart.
// Only the id is consumed client-side; everything else is echoed config.
type Persona struct {
	ID int64 `json:"id"`
}

// CreatePersonaRequest mirrors POST /v1/personas.
type CreatePersonaRequest struct {
	Name          string `json:"name"`
	PersonaGender string `json:"persona_gender"`
	Personality   string `json:"personality"`
	SpeechStyle   string `json:"speech_style"`
	AnonID        string `json:"anon_id"`
}

// CreateSessionRequest mirrors POST /v1/sessions.
type CreateSessionRequest struct {
	PersonaID  int64  `json:"persona_id"`
	UserGender string `json:"user_gender"`
	AnonID     string `json:"anon_id"`
}

// Session is the handle returned by session creation.
type Session struct {
	SessionID int64 `json:"session_id"`
}

// MessageReply is the backend's answer to a message send.
// CreditsRemaining is optional: absence means "no override" and the
// client keeps its local prediction.
type MessageReply struct {
	Reply            string `json:"reply"`
	CreditsRemaining *int   `json:"credits_remaining,omitempty"`
}

// User is the authenticated identity returned by GET /auth/me.
type User struct {
	Email   string `json:"email"`
	Credits int    `json:"credits"`
	IsAdmin bool   `json:"is_admin"`
}

// TranscriptMessage is a single stored turn in an admin transcript.
type TranscriptMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is one session with its embedded ordered transcript.
type Conversation struct {
	SessionID    int64               `json:"session_id"`
	AnonID       string              `json:"anon_id"`
	CreatedAt    time.Time           `json:"created_at"`
	MessageCount int                 `json:"message_count"`
	Messages     []TranscriptMessage `json:"messages"`
}

// ConversationList is the admin listing response.
type ConversationList struct {
	Conversations []Conversation `json:"conversations"`
	TotalSessions int            `json:"total_sessions"`
}
