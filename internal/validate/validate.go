// Package validate contains the pure validation rules that gate every
// mutation before it reaches a store. Each function returns nil on success or
// one of the sentinel validation errors from the model package.
package validate

import (
	"regexp"

	"github.com/EzraElette/contacts-server/internal/model"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 10
	passwordMaxLen = 25
)

var (
	usernameChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	wordChar      = regexp.MustCompile(`\w`)
)

// Username checks a signup candidate. A taken name is reported before a
// malformed one. The length bound is enforced with an explicit range check,
// not a regexp quantifier.
func Username(candidate string, taken func(string) bool) error {
	if taken != nil && taken(candidate) {
		return model.ErrUsernameTaken
	}
	if len(candidate) < usernameMinLen || len(candidate) > usernameMaxLen {
		return model.ErrInvalidUsername
	}
	if !usernameChars.MatchString(candidate) {
		return model.ErrInvalidUsername
	}
	return nil
}

// PasswordPair checks the two signup password fields. Mismatch is reported
// before length; length must fall in [10,25] inclusive.
func PasswordPair(p1, p2 string) error {
	if p1 != p2 {
		return model.ErrPasswordMismatch
	}
	if len(p1) < passwordMinLen || len(p1) > passwordMaxLen {
		return model.ErrPasswordLength
	}
	return nil
}

// ContactName checks a contact's full name: non-empty with at least one word
// character.
func ContactName(fullName string) error {
	if fullName == "" || !wordChar.MatchString(fullName) {
		return model.ErrInvalidName
	}
	return nil
}

// Relationship checks a contact's relationship tag against the fixed set.
func Relationship(r model.Relationship) error {
	if !r.Valid() {
		return model.ErrUnknownRelationship
	}
	return nil
}
