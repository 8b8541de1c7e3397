package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/EzraElette/contacts-server/internal/index"
	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
)

// ContactService defines the contact-collection operations the routing layer
// calls.
type ContactService interface {
	List(ctx context.Context, username string, relationship model.Relationship) ([]index.Group, error)
	Get(ctx context.Context, username, slug string) (model.Contact, error)
	Add(ctx context.Context, username string, contact model.Contact) (string, error)
	Update(ctx context.Context, username, oldSlug string, contact model.Contact) (string, error)
	Delete(ctx context.Context, username, slug string) error
}

// Contact handles HTTP endpoints for contact collections.
type Contact struct {
	contactService ContactService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(contactService ContactService, contextManager model.ContextManager, logger *logger.Logger) *Contact {
	return &Contact{
		contactService: contactService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type listResponse struct {
	Groups []index.Group `json:"groups"`
}

type slugResponse struct {
	Slug string `json:"slug"`
}

// List returns the letter-grouped index, optionally filtered by the
// relationship query parameter.
func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	relationship := model.Relationship(r.URL.Query().Get("relationship"))

	groups, err := h.contactService.List(r.Context(), username, relationship)
	if err != nil {
		h.logger.Error("Contact handler: list failed",
			"username", username,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Groups: groups})
}

// Get returns one contact by slug.
func (h *Contact) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	contact, err := h.contactService.Get(r.Context(), username, slug)
	if err != nil {
		h.logger.Error("Contact handler: get failed",
			"username", username,
			"slug", slug,
			"error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Add stores a new contact and returns its slug.
func (h *Contact) Add(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	slug, err := h.contactService.Add(r.Context(), username, contact)
	if err != nil {
		h.logger.Error("Contact handler: add failed",
			"username", username,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Contact handler: contact added",
		"username", username,
		"slug", slug)

	writeJSON(w, http.StatusCreated, slugResponse{Slug: slug})
}

// Update replaces the contact under the slug path parameter and returns the
// possibly renamed slug.
func (h *Contact) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}
	oldSlug := chi.URLParam(r, "slug")

	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	newSlug, err := h.contactService.Update(r.Context(), username, oldSlug, contact)
	if err != nil {
		h.logger.Error("Contact handler: update failed",
			"username", username,
			"slug", oldSlug,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Contact handler: contact updated",
		"username", username,
		"old_slug", oldSlug,
		"new_slug", newSlug)

	writeJSON(w, http.StatusOK, slugResponse{Slug: newSlug})
}

// Delete removes the contact under the slug path parameter. Idempotent: an
// absent slug still yields 204.
func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}
	slug := chi.URLParam(r, "slug")

	if err := h.contactService.Delete(r.Context(), username, slug); err != nil {
		h.logger.Error("Contact handler: delete failed",
			"username", username,
			"slug", slug,
			"error", err.Error())
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// username extracts the authenticated identity set by the middleware. A
// request that got here without one is a routing mistake, not a user error.
func (h *Contact) username(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := h.contextManager.Username(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authorization required"})
		return "", false
	}
	return username, true
}
