// Package credentials persists the single api key / email pair the CLI
// signs in with.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "config.json"

// Record is the stored credential.
type Record struct {
	APIKey string `json:"api_key"`
	Email  string `json:"email"`
}

func (r Record) LoggedIn() bool {
	return r.APIKey != ""
}

// Store reads and writes Record as JSON inside dir.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load returns an empty Record when nothing has been saved.
func (s *Store) Load() (Record, error) {
	var rec Record
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return rec, nil
	}
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse %s: %w", s.Path(), err)
	}
	return rec, nil
}

// Save overwrites the stored credential.
func (s *Store) Save(apiKey, email string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(Record{APIKey: apiKey, Email: email})
	if err != nil {
		return err
	}
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}

// Clear removes the stored credential; clearing twice is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
