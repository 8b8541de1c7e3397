// Package index derives the letter-grouped view of a contact collection used
// for display. It is pure: no I/O, deterministic for a given input.
package index

import (
	"sort"
	"strings"
	"unicode"

	"github.com/EzraElette/contacts-server/internal/model"
)

// Entry is one contact under its display name.
type Entry struct {
	Name    string        `json:"name"`
	Contact model.Contact `json:"contact"`
}

// Group is all contacts sharing an uppercased first letter, ordered by name.
type Group struct {
	Letter  string  `json:"letter"`
	Entries []Entry `json:"entries"`
}

// ByFirstLetter sorts display names lexicographically (case-insensitive, byte
// order as tiebreak) and groups consecutive names sharing the same uppercased
// first rune. Groups come out in ascending letter order. An empty collection
// yields an empty sequence.
func ByFirstLetter(contacts map[string]model.Contact) []Group {
	if len(contacts) == 0 {
		return nil
	}

	names := make([]string, 0, len(contacts))
	for name := range contacts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})

	var groups []Group
	for _, name := range names {
		letter := firstLetter(name)
		if len(groups) == 0 || groups[len(groups)-1].Letter != letter {
			groups = append(groups, Group{Letter: letter})
		}
		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, Entry{Name: name, Contact: contacts[name]})
	}

	return groups
}

func firstLetter(name string) string {
	for _, r := range name {
		return string(unicode.ToUpper(r))
	}
	return ""
}
