package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePersona(t *testing.T) {
	var gotBody CreatePersonaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/personas", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]int64{"id": 42})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	persona, err := client.CreatePersona(context.Background(), CreatePersonaRequest{
		Name:          "Mia",
		PersonaGender: "female",
		Personality:   "sweet, bold, and playful",
		SpeechStyle:   "warm, flirty, and direct",
		AnonID:        "anon-123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), persona.ID)
	assert.Equal(t, "Mia", gotBody.Name)
	assert.Equal(t, "anon-123", gotBody.AnonID)
}

func TestCreateSessionAttachesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sessions", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]int64{"session_id": 7})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("tok-1"))
	session, err := client.CreateSession(context.Background(), CreateSessionRequest{
		PersonaID:  42,
		UserGender: "male",
		AnonID:     "anon-123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.SessionID)
}

func TestSendMessage(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    string
		wantErr     error
		wantReply   string
		wantCredits *int
	}{
		{
			name:      "reply without credits override",
			status:    http.StatusOK,
			response:  `{"reply":"hi"}`,
			wantReply: "hi",
		},
		{
			name:        "reply with credits override",
			status:      http.StatusOK,
			response:    `{"reply":"hey","credits_remaining":3}`,
			wantReply:   "hey",
			wantCredits: intPtr(3),
		},
		{
			name:     "payment required",
			status:   http.StatusPaymentRequired,
			response: `{"error":"credits exhausted"}`,
			wantErr:  ErrPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/sessions/7/message", r.URL.Path)
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "hello", body["text"])
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			client := NewClient(srv.URL)
			reply, err := client.SendMessage(context.Background(), 7, "hello")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReply, reply.Reply)
			assert.Equal(t, tt.wantCredits, reply.CreditsRemaining)
		})
	}
}

func TestLoginAndRegisterReturnToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@b.c", body["email"])
			assert.Equal(t, "hunter22", body["password"])
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-" + r.URL.Path[6:]})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.Login(context.Background(), "a@b.c", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", token)

	token, err = client.Register(context.Background(), "a@b.c", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-register", token)
}

func TestMeRejectionIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithToken("stale"))
	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestListConversations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/conversations", r.URL.Path)
		if r.Header.Get("x-admin-key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{
			"conversations": [
				{"session_id": 1, "anon_id": "abcd1234-x", "message_count": 2,
				 "messages": [{"role":"user","content":"hi"},{"role":"assistant","content":"hey"}]}
			],
			"total_sessions": 1
		}`))
	}))
	defer srv.Close()

	wrong := NewClient(srv.URL, WithAdminKey("nope"))
	_, err := wrong.ListConversations(context.Background())
	require.ErrorIs(t, err, ErrForbidden)

	client := NewClient(srv.URL, WithAdminKey("secret"))
	list, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalSessions)
	require.Len(t, list.Conversations, 1)
	assert.Equal(t, int64(1), list.Conversations[0].SessionID)
	require.Len(t, list.Conversations[0].Messages, 2)
	assert.Equal(t, "assistant", list.Conversations[0].Messages[1].Role)
}

func TestAddCredits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users/u-9/credits", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 100, body["amount"])
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithAdminKey("secret"))
	require.NoError(t, client.AddCredits(context.Background(), "u-9", 100))
}

func TestStatusErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Me(context.Background())
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Contains(t, statusErr.Error(), "boom")
}

func intPtr(v int) *int { return &v }
