// Package storage persists the small set of durable client flags:
// the anonymous id, the age-verified flag and the auth token. Nothing
// here is synchronized across devices; the backend owns the durable
// record of everything else.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is what lives in the state file.
type State struct {
	AnonID      string `yaml:"anon_id,omitempty"`
	AgeVerified bool   `yaml:"age_verified,omitempty"`
	AuthToken   string `yaml:"auth_token,omitempty"`
}

// Store reads and writes the state file.
type Store struct {
	path string
}

// NewStore creates a store rooted at dir; the state file is dir/state.yml.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "state.yml")}
}

// DefaultStore places the state file under ~/.gf.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".gf")), nil
}

// Load reads the state file, returning an empty state when it does not
// exist yet.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return &state, nil
}

// Save writes the state file, creating its directory if needed. The
// file holds the auth token, so it is not group or world readable.
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result.
func (s *Store) Update(fn func(*State)) error {
	state, err := s.Load()
	if err != nil {
		return err
	}
	fn(state)
	return s.Save(state)
}
