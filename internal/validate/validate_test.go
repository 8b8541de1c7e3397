package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzraElette/contacts-server/internal/model"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		taken     func(string) bool
		wantErr   error
	}{
		{
			name:      "valid plain",
			candidate: "ezra",
		},
		{
			name:      "valid with dash and underscore",
			candidate: "ezra-elette_99",
		},
		{
			name:      "valid minimum length",
			candidate: "abc",
		},
		{
			name:      "valid maximum length",
			candidate: strings.Repeat("a", 20),
		},
		{
			name:      "too short",
			candidate: "ab",
			wantErr:   model.ErrInvalidUsername,
		},
		{
			name:      "too long",
			candidate: strings.Repeat("a", 21),
			wantErr:   model.ErrInvalidUsername,
		},
		{
			name:      "empty",
			candidate: "",
			wantErr:   model.ErrInvalidUsername,
		},
		{
			name:      "illegal characters",
			candidate: "ezra elette",
			wantErr:   model.ErrInvalidUsername,
		},
		{
			name:      "path characters",
			candidate: "../etc",
			wantErr:   model.ErrInvalidUsername,
		},
		{
			name:      "taken reported before shape",
			candidate: "x", // also malformed, taken wins
			taken:     func(string) bool { return true },
			wantErr:   model.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.candidate, tt.taken)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPasswordPair(t *testing.T) {
	tests := []struct {
		name    string
		p1, p2  string
		wantErr error
	}{
		{
			name: "valid",
			p1:   "password123", p2: "password123",
		},
		{
			name: "valid minimum length",
			p1:   strings.Repeat("p", 10), p2: strings.Repeat("p", 10),
		},
		{
			name: "valid maximum length",
			p1:   strings.Repeat("p", 25), p2: strings.Repeat("p", 25),
		},
		{
			name: "mismatch",
			p1:   "password123", p2: "password124",
			wantErr: model.ErrPasswordMismatch,
		},
		{
			name: "too short",
			p1:   "shortpass", p2: "shortpass",
			wantErr: model.ErrPasswordLength,
		},
		{
			name: "too long",
			p1:   strings.Repeat("p", 26), p2: strings.Repeat("p", 26),
			wantErr: model.ErrPasswordLength,
		},
		{
			name: "mismatch checked before length",
			p1:   "a", p2: "b",
			wantErr: model.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PasswordPair(tt.p1, tt.p2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestContactName(t *testing.T) {
	assert.NoError(t, ContactName("Ezra Ellette"))
	assert.NoError(t, ContactName("X"))
	assert.ErrorIs(t, ContactName(""), model.ErrInvalidName)
	assert.ErrorIs(t, ContactName("   "), model.ErrInvalidName)
	assert.ErrorIs(t, ContactName("---"), model.ErrInvalidName)
}

func TestRelationship(t *testing.T) {
	for _, r := range model.Relationships() {
		assert.NoError(t, Relationship(r))
	}
	assert.ErrorIs(t, Relationship("enemy"), model.ErrUnknownRelationship)
	assert.ErrorIs(t, Relationship(""), model.ErrUnknownRelationship)
}
