// Package identity resolves who the client is acting as: always a
// durable anonymous id, plus an optional authenticated user when a
// bearer token is on file.
package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/codersam0220/gf-frontend/pkg/api"
	"github.com/codersam0220/gf-frontend/pkg/storage"
)

// UserFetcher is the piece of the backend the resolver needs.
type UserFetcher interface {
	Me(ctx context.Context) (*api.User, error)
}

// Resolver owns the identity-related slots of the client state.
type Resolver struct {
	store *storage.Store
	log   *logrus.Entry
}

// NewResolver creates a resolver over the given store.
func NewResolver(store *storage.Store) *Resolver {
	return &Resolver{
		store: store,
		log:   logrus.WithField("component", "identity"),
	}
}

// AnonymousID returns the device's anonymous id, generating and
// persisting a fresh UUID on first use. There is no server-side
// collision check; UUID collision probability is an accepted risk.
func (r *Resolver) AnonymousID() (string, error) {
	state, err := r.store.Load()
	if err != nil {
		return "", err
	}
	if state.AnonID != "" {
		return state.AnonID, nil
	}

	id := uuid.NewString()
	state.AnonID = id
	if err := r.store.Save(state); err != nil {
		return "", fmt.Errorf("persist anonymous id: %w", err)
	}
	r.log.WithField("anon_id", id).Debug("generated anonymous id")
	return id, nil
}

// AuthToken returns the stored bearer token, empty when logged out.
func (r *Resolver) AuthToken() (string, error) {
	state, err := r.store.Load()
	if err != nil {
		return "", err
	}
	return state.AuthToken, nil
}

// SetAuthToken stores the bearer token after register/login.
func (r *Resolver) SetAuthToken(token string) error {
	return r.store.Update(func(s *storage.State) { s.AuthToken = token })
}

// Logout removes the bearer token. No backend call is made.
func (r *Resolver) Logout() error {
	return r.SetAuthToken("")
}

// CurrentUser returns the authenticated user, or nil when no token is
// stored or the backend rejects it. Rejection degrades silently to
// anonymous mode; it never blocks startup.
func (r *Resolver) CurrentUser(ctx context.Context, fetch UserFetcher) *api.User {
	token, err := r.AuthToken()
	if err != nil || token == "" {
		return nil
	}

	user, err := fetch.Me(ctx)
	if err != nil {
		r.log.WithError(err).Debug("auth check failed, continuing anonymously")
		return nil
	}
	return user
}

// AgeVerified reports whether the age gate was already confirmed on
// this device. Purely a UX gate, not security-enforced.
func (r *Resolver) AgeVerified() (bool, error) {
	state, err := r.store.Load()
	if err != nil {
		return false, err
	}
	return state.AgeVerified, nil
}

// SetAgeVerified persists the age-gate confirmation so future visits
// skip the gate.
func (r *Resolver) SetAgeVerified() error {
	return r.store.Update(func(s *storage.State) { s.AgeVerified = true })
}
