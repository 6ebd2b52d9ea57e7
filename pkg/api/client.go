// Package api is the HTTP client for the companion-chat backend.
// The backend owns all persona behavior, message generation and credit
// accounting; this package only speaks its wire contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production backend. Override with GF_API_URL
// or the --api-url flag.
const DefaultBaseURL = "https://web-production-16d69.up.railway.app"

// requestTimeout bounds every call so a hung backend cannot leave the
// UI in a connecting/loading state forever.
const requestTimeout = 30 * time.Second

// Client talks to the companion-chat backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	adminKey   string
	log        *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithToken attaches a bearer token to every request that accepts one.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithAdminKey sets the x-admin-key header for admin reads.
func WithAdminKey(key string) Option {
	return func(c *Client) { c.adminKey = key }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the given base URL. An empty baseURL
// falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        logrus.WithField("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreatePersona provisions a persona for this chat attempt.
func (c *Client) CreatePersona(ctx context.Context, req CreatePersonaRequest) (*Persona, error) {
	var persona Persona
	if err := c.do(ctx, http.MethodPost, "/v1/personas", req, &persona); err != nil {
		return nil, fmt.Errorf("create persona: %w", err)
	}
	return &persona, nil
}

// CreateSession opens a chat session bound to an existing persona.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/v1/sessions", req, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &session, nil
}

// SendMessage posts one user turn and returns the assistant reply.
// A 402 surfaces as ErrPaymentRequired.
func (c *Client) SendMessage(ctx context.Context, sessionID int64, text string) (*MessageReply, error) {
	path := fmt.Sprintf("/v1/sessions/%d/message", sessionID)
	var reply MessageReply
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &reply); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &reply, nil
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.authCall(ctx, "/auth/register", email, password)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authCall(ctx, "/auth/login", email, password)
}

func (c *Client) authCall(ctx context.Context, path, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimPrefix(path, "/auth/"), err)
	}
	return out.Token, nil
}

// Me returns the authenticated user for the configured token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	return &user, nil
}

// AddCredits tops up a user's balance. Admin only.
func (c *Client) AddCredits(ctx context.Context, userID string, amount int) error {
	path := fmt.Sprintf("/admin/users/%s/credits", userID)
	if err := c.do(ctx, http.MethodPost, path, map[string]int{"amount": amount}, nil); err != nil {
		return fmt.Errorf("add credits: %w", err)
	}
	return nil
}

// ListConversations fetches every stored session with its transcript.
// A 403 surfaces as ErrForbidden.
func (c *Client) ListConversations(ctx context.Context) (*ConversationList, error) {
	var list ConversationList
	if err := c.do(ctx, http.MethodGet, "/admin/conversations", nil, &list); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return &list, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Status codes with a contract meaning map to sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrPaymentRequired
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
