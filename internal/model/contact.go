package model

import (
	"context"
	"strings"
)

// ContactStore defines persistence operations for per-user contact
// collections. All operations are scoped to one user's collection; mutations
// on the same collection are serialized, mutations on different collections
// are independent.
type ContactStore interface {
	CreateCollection(ctx context.Context, username string) error
	RemoveCollection(ctx context.Context, username string) error
	Load(ctx context.Context, username string) (map[string]Contact, error)
	Get(ctx context.Context, username, slug string) (Contact, error)
	Upsert(ctx context.Context, username, slug string, contact Contact) error
	Rename(ctx context.Context, username, oldSlug, newSlug string, contact Contact) error
	Delete(ctx context.Context, username, slug string) error
}

// Contact represents a single contact record. Only the name fields are
// validated; birthday, phone and email are free-form strings.
type Contact struct {
	FirstName    string       `yaml:"firstName" json:"firstName"`
	LastName     string       `yaml:"lastName" json:"lastName"`
	BirthMonth   string       `yaml:"birthMonth" json:"birthMonth"`
	BirthDay     string       `yaml:"birthDay" json:"birthDay"`
	BirthYear    string       `yaml:"birthYear" json:"birthYear"`
	Relationship Relationship `yaml:"relationship" json:"relationship"`
	Phone        string       `yaml:"phone" json:"phone"`
	Email        string       `yaml:"email" json:"email"`
	Address      string       `yaml:"address" json:"address"`
	City         string       `yaml:"city" json:"city"`
	State        string       `yaml:"state" json:"state"`
	ZipCode      string       `yaml:"zipCode" json:"zipCode"`
}

// FullName joins the name fields with a single space.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Slug derives the storage key for a contact from its full name: runs of
// whitespace are replaced with underscores, case is preserved. Renaming a
// contact changes its slug.
func Slug(fullName string) string {
	return strings.Join(strings.Fields(fullName), "_")
}

// Relationship enumerates contact relationship tags.
type Relationship string

const (
	RelationshipBusiness Relationship = "business"
	RelationshipFamily   Relationship = "family"
	RelationshipFriend   Relationship = "friend"
	RelationshipSchool   Relationship = "school"
	RelationshipWork     Relationship = "work"
	RelationshipOther    Relationship = "other"
)

// Relationships lists all valid tags in display order.
func Relationships() []Relationship {
	return []Relationship{
		RelationshipBusiness,
		RelationshipFamily,
		RelationshipFriend,
		RelationshipSchool,
		RelationshipWork,
		RelationshipOther,
	}
}

// Valid reports whether the tag belongs to the fixed set.
func (r Relationship) Valid() bool {
	switch r {
	case RelationshipBusiness, RelationshipFamily, RelationshipFriend,
		RelationshipSchool, RelationshipWork, RelationshipOther:
		return true
	}
	return false
}
