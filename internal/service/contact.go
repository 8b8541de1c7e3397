package service

import (
	"context"
	"fmt"

	"github.com/EzraElette/contacts-server/internal/index"
	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
	"github.com/EzraElette/contacts-server/internal/validate"
)

// Contact provides the contact-collection operations exposed to the routing
// layer. Every call is scoped to the authenticated username passed in
// explicitly.
type Contact struct {
	store  model.ContactStore
	logger *logger.Logger
}

// NewContact creates a new Contact service.
func NewContact(store model.ContactStore, logger *logger.Logger) *Contact {
	return &Contact{
		store:  store,
		logger: logger,
	}
}

// List returns the letter-grouped view of the user's collection, optionally
// filtered to one relationship tag. An empty tag means no filter.
func (s *Contact) List(ctx context.Context, username string, relationship model.Relationship) ([]index.Group, error) {
	if relationship != "" {
		if err := validate.Relationship(relationship); err != nil {
			return nil, err
		}
	}

	contacts, err := s.store.Load(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	if relationship != "" {
		filtered := make(map[string]model.Contact, len(contacts))
		for slug, c := range contacts {
			if c.Relationship == relationship {
				filtered[slug] = c
			}
		}
		contacts = filtered
	}

	return index.ByFirstLetter(contacts), nil
}

// Get returns one contact by slug.
func (s *Contact) Get(ctx context.Context, username, slug string) (model.Contact, error) {
	contact, err := s.store.Get(ctx, username, slug)
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// Add validates and stores a new contact and returns its name-derived slug.
// An existing contact under the same slug is replaced.
func (s *Contact) Add(ctx context.Context, username string, contact model.Contact) (string, error) {
	if err := s.validateContact(contact); err != nil {
		return "", err
	}

	slug := model.Slug(contact.FullName())
	if err := s.store.Upsert(ctx, username, slug, contact); err != nil {
		return "", fmt.Errorf("failed to store contact: %w", err)
	}

	s.logger.Info("Contact service: contact added",
		"username", username,
		"slug", slug)

	return slug, nil
}

// Update replaces the contact stored under oldSlug. The slug is recomputed
// from the new name fields; when it changes, the old entry is removed and the
// new one inserted in one atomic step. Returns the new slug.
func (s *Contact) Update(ctx context.Context, username, oldSlug string, contact model.Contact) (string, error) {
	if err := s.validateContact(contact); err != nil {
		return "", err
	}

	if _, err := s.store.Get(ctx, username, oldSlug); err != nil {
		return "", err
	}

	newSlug := model.Slug(contact.FullName())
	if err := s.store.Rename(ctx, username, oldSlug, newSlug, contact); err != nil {
		return "", fmt.Errorf("failed to store contact: %w", err)
	}

	s.logger.Info("Contact service: contact updated",
		"username", username,
		"old_slug", oldSlug,
		"new_slug", newSlug)

	return newSlug, nil
}

// Delete removes the contact stored under slug. Deleting an absent slug is a
// no-op, never an error.
func (s *Contact) Delete(ctx context.Context, username, slug string) error {
	if err := s.store.Delete(ctx, username, slug); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	s.logger.Info("Contact service: contact deleted",
		"username", username,
		"slug", slug)

	return nil
}

func (s *Contact) validateContact(contact model.Contact) error {
	if err := validate.ContactName(contact.FullName()); err != nil {
		return err
	}
	if err := validate.Relationship(contact.Relationship); err != nil {
		return err
	}
	return nil
}
