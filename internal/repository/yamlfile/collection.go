package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/EzraElette/contacts-server/internal/keymutex"
	"github.com/EzraElette/contacts-server/internal/model"
)

var _ model.ContactStore = (*CollectionStore)(nil)

// collectionDoc is the on-disk shape of one user's collection file.
type collectionDoc struct {
	Contacts map[string]model.Contact `yaml:"contacts"`
}

// CollectionStore keeps one contact collection per user, each in its own
// YAML file under dir. Mutations on one user's collection are serialized by a
// per-username lock with a bounded wait; collections of different users never
// block one another. Files are replaced atomically (write temp, rename), so
// lock-free readers always see a complete document.
type CollectionStore struct {
	dir      string
	lockWait time.Duration
	locks    *keymutex.KeyMutex
}

// NewCollectionStore creates a CollectionStore rooted at dir. lockWait bounds
// how long a mutation waits for the per-collection lock before failing with
// model.ErrCollectionBusy.
func NewCollectionStore(dir string, lockWait time.Duration) *CollectionStore {
	return &CollectionStore{
		dir:      dir,
		lockWait: lockWait,
		locks:    keymutex.New(),
	}
}

// CreateCollection creates an empty collection file for username. The file
// is created exclusively; an already existing collection yields
// model.ErrUsernameTaken so a racing signup cannot clobber another user's
// data.
func (s *CollectionStore) CreateCollection(ctx context.Context, username string) error {
	if err := s.lock(ctx, username); err != nil {
		return err
	}
	defer s.locks.Unlock(username)

	data, err := yaml.Marshal(collectionDoc{Contacts: map[string]model.Contact{}})
	if err != nil {
		return fmt.Errorf("failed to marshal empty collection: %w", err)
	}

	f, err := os.OpenFile(s.path(username), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, os.ErrExist) {
		return model.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("%w: failed to create collection file: %w", model.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write collection file: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

// RemoveCollection deletes a collection file. Used to roll back a signup
// whose user-table append failed after the file was created.
func (s *CollectionStore) RemoveCollection(ctx context.Context, username string) error {
	if err := s.lock(ctx, username); err != nil {
		return err
	}
	defer s.locks.Unlock(username)

	if err := os.Remove(s.path(username)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: failed to remove collection file: %w", model.ErrStoreUnavailable, err)
	}
	return nil
}

// Load reads the full collection. A missing or unparsable file is fatal for
// the request and reported as model.ErrStoreUnavailable.
func (s *CollectionStore) Load(ctx context.Context, username string) (map[string]model.Contact, error) {
	doc, err := s.read(username)
	if err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}

// Get returns one contact by slug, or model.ErrNotFound.
func (s *CollectionStore) Get(ctx context.Context, username, slug string) (model.Contact, error) {
	doc, err := s.read(username)
	if err != nil {
		return model.Contact{}, err
	}

	contact, ok := doc.Contacts[slug]
	if !ok {
		return model.Contact{}, model.ErrNotFound
	}

	return contact, nil
}

// Upsert inserts or fully replaces the contact stored under slug.
func (s *CollectionStore) Upsert(ctx context.Context, username, slug string, contact model.Contact) error {
	return s.mutate(ctx, username, func(contacts map[string]model.Contact) {
		contacts[slug] = contact
	})
}

// Rename removes oldSlug and inserts the contact under newSlug in one atomic
// step. With oldSlug == newSlug it degenerates to Upsert.
func (s *CollectionStore) Rename(ctx context.Context, username, oldSlug, newSlug string, contact model.Contact) error {
	return s.mutate(ctx, username, func(contacts map[string]model.Contact) {
		delete(contacts, oldSlug)
		contacts[newSlug] = contact
	})
}

// Delete removes the contact stored under slug. Deleting an absent slug is a
// no-op.
func (s *CollectionStore) Delete(ctx context.Context, username, slug string) error {
	return s.mutate(ctx, username, func(contacts map[string]model.Contact) {
		delete(contacts, slug)
	})
}

// mutate runs one load-modify-store cycle under the per-collection lock. The
// lock is released on every exit path.
func (s *CollectionStore) mutate(ctx context.Context, username string, fn func(map[string]model.Contact)) error {
	if err := s.lock(ctx, username); err != nil {
		return err
	}
	defer s.locks.Unlock(username)

	doc, err := s.read(username)
	if err != nil {
		return err
	}
	if doc.Contacts == nil {
		doc.Contacts = map[string]model.Contact{}
	}

	fn(doc.Contacts)

	return s.write(username, doc)
}

func (s *CollectionStore) lock(ctx context.Context, username string) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	if err := s.locks.Lock(lockCtx, username); err != nil {
		return fmt.Errorf("%w: %w", model.ErrCollectionBusy, err)
	}
	return nil
}

func (s *CollectionStore) read(username string) (collectionDoc, error) {
	data, err := os.ReadFile(s.path(username))
	if err != nil {
		return collectionDoc{}, fmt.Errorf("%w: failed to read collection: %w", model.ErrStoreUnavailable, err)
	}

	// KnownFields rejects contact keys outside the schema.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc collectionDoc
	if err := dec.Decode(&doc); err != nil {
		return collectionDoc{}, fmt.Errorf("%w: failed to parse collection: %w", model.ErrStoreUnavailable, err)
	}

	return doc, nil
}

// write replaces the collection file via temp file and rename, so a reader
// racing the write sees either the old or the new document.
func (s *CollectionStore) write(username string, doc collectionDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, username+".yml.tmp-")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", model.ErrStoreUnavailable, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: failed to write temp file: %w", model.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: failed to close temp file: %w", model.ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmp.Name(), s.path(username)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: failed to replace collection file: %w", model.ErrStoreUnavailable, err)
	}

	return nil
}

// path maps a username to its collection file. Base strips any path
// separators so the name cannot escape dir.
func (s *CollectionStore) path(username string) string {
	return filepath.Join(s.dir, filepath.Base(username)+".yml")
}
