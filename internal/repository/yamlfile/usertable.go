// Package yamlfile persists the user table and per-user contact collections
// as YAML documents on disk. The files are the database: every read loads
// durable state, every write goes through an exclusive guard.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/EzraElette/contacts-server/internal/model"
)

var _ model.UserStore = (*UserTable)(nil)

// UserTable is the shared username -> password-hash table backed by a single
// YAML file. Rows are only ever appended; each row is written with one write
// call so a concurrent reader sees the pre-append or post-append state, never
// a torn line.
type UserTable struct {
	path string
	mu   sync.RWMutex
}

// NewUserTable creates a UserTable backed by the file at path. The file does
// not have to exist yet; an absent file reads as an empty table.
func NewUserTable(path string) *UserTable {
	return &UserTable{path: path}
}

// Get returns the user with the given username, or model.ErrNotFound.
func (t *UserTable) Get(ctx context.Context, username string) (model.User, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users, err := t.load()
	if err != nil {
		return model.User{}, err
	}

	hash, ok := users[username]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	return model.User{Username: username, PasswordHash: hash}, nil
}

// Exists reports whether the username is already registered.
func (t *UserTable) Exists(ctx context.Context, username string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users, err := t.load()
	if err != nil {
		return false, err
	}

	_, ok := users[username]
	return ok, nil
}

// Create appends the user to the table. The taken check and the append run
// under the same exclusive section, so two racing registrations of the same
// name cannot both succeed. Existing rows are never rewritten.
func (t *UserTable) Create(ctx context.Context, user model.User) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	users, err := t.load()
	if err != nil {
		return err
	}
	if _, ok := users[user.Username]; ok {
		return model.ErrUsernameTaken
	}

	row, err := yaml.Marshal(map[string]string{user.Username: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("failed to marshal user row: %w", err)
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("%w: failed to open user table: %w", model.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := f.Write(row); err != nil {
		return fmt.Errorf("%w: failed to append user row: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

// load reads the full table. Callers hold at least the read lock.
func (t *UserTable) load() (map[string]string, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read user table: %w", model.ErrStoreUnavailable, err)
	}

	users := map[string]string{}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: failed to parse user table: %w", model.ErrStoreUnavailable, err)
	}

	return users, nil
}
