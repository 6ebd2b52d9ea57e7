package cmd

import (
	"os"

	"github.com/codersam0220/gf-frontend/pkg/api"
	"github.com/codersam0220/gf-frontend/pkg/identity"
	"github.com/codersam0220/gf-frontend/pkg/storage"
)

var apiURLFlag string

// resolveBaseURL picks the backend URL: flag, then GF_API_URL, then
// the built-in default.
func resolveBaseURL() string {
	if apiURLFlag != "" {
		return apiURLFlag
	}
	if url := os.Getenv("GF_API_URL"); url != "" {
		return url
	}
	return api.DefaultBaseURL
}

// newResolver opens the durable client state under ~/.gf.
func newResolver() (*identity.Resolver, error) {
	store, err := storage.DefaultStore()
	if err != nil {
		return nil, err
	}
	return identity.NewResolver(store), nil
}

// newClient builds an API client carrying the stored bearer token,
// when one exists.
func newClient(ids *identity.Resolver) (*api.Client, error) {
	token, err := ids.AuthToken()
	if err != nil {
		return nil, err
	}
	var opts []api.Option
	if token != "" {
		opts = append(opts, api.WithToken(token))
	}
	return api.NewClient(resolveBaseURL(), opts...), nil
}
