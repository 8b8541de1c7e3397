package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzraElette/contacts-server/internal/model"
	"github.com/EzraElette/contacts-server/internal/repository/yamlfile"
	"github.com/EzraElette/contacts-server/internal/testutil"
	"github.com/EzraElette/contacts-server/internal/token"
)

// End-to-end flow over the real file-backed stores: signup, login, add a
// contact, read it back under its name-derived slug.
func TestSignupLoginAddGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	userTable := yamlfile.NewUserTable(filepath.Join(dir, "users.yml"))
	collections := yamlfile.NewCollectionStore(dir, time.Second)
	tokenManager := token.NewJWT("testsecret", time.Hour)
	log := testutil.MakeNoopLogger()

	auth := NewAuth(userTable, collections, tokenManager, log)
	contacts := NewContact(collections, log)

	require.NoError(t, auth.SignUp(ctx, "ezra", "password123", "password123"))

	tokenString, err := auth.Login(ctx, "ezra", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	username, err := tokenManager.ParseToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, "ezra", username)

	slug, err := contacts.Add(ctx, "ezra", model.Contact{
		FirstName:    "Ezra",
		LastName:     "Ellette",
		Relationship: model.RelationshipFriend,
	})
	require.NoError(t, err)
	require.Equal(t, "Ezra_Ellette", slug)

	got, err := contacts.Get(ctx, "ezra", "Ezra_Ellette")
	require.NoError(t, err)
	assert.Equal(t, "Ezra", got.FirstName)
	assert.Equal(t, "Ellette", got.LastName)
}

func TestSignupDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	userTable := yamlfile.NewUserTable(filepath.Join(dir, "users.yml"))
	collections := yamlfile.NewCollectionStore(dir, time.Second)
	tokenManager := token.NewJWT("testsecret", time.Hour)

	auth := NewAuth(userTable, collections, tokenManager, testutil.MakeNoopLogger())

	require.NoError(t, auth.SignUp(ctx, "alice", "password123", "password123"))

	err := auth.SignUp(ctx, "alice", "otherpassword", "otherpassword")
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestLoginEmptyPasswordNeverSucceeds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	userTable := yamlfile.NewUserTable(filepath.Join(dir, "users.yml"))
	collections := yamlfile.NewCollectionStore(dir, time.Second)
	tokenManager := token.NewJWT("testsecret", time.Hour)

	auth := NewAuth(userTable, collections, tokenManager, testutil.MakeNoopLogger())

	require.NoError(t, auth.SignUp(ctx, "alice", "password123", "password123"))

	_, err := auth.Login(ctx, "alice", "")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody", "")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUpdateRenamesAcrossStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	userTable := yamlfile.NewUserTable(filepath.Join(dir, "users.yml"))
	collections := yamlfile.NewCollectionStore(dir, time.Second)
	tokenManager := token.NewJWT("testsecret", time.Hour)
	log := testutil.MakeNoopLogger()

	auth := NewAuth(userTable, collections, tokenManager, log)
	contacts := NewContact(collections, log)

	require.NoError(t, auth.SignUp(ctx, "ezra", "password123", "password123"))

	_, err := contacts.Add(ctx, "ezra", model.Contact{
		FirstName:    "Ezra",
		LastName:     "Ellette",
		Relationship: model.RelationshipFriend,
	})
	require.NoError(t, err)

	newSlug, err := contacts.Update(ctx, "ezra", "Ezra_Ellette", model.Contact{
		FirstName:    "Ezra",
		LastName:     "Smith",
		Relationship: model.RelationshipFamily,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ezra_Smith", newSlug)

	// The old addressing key is gone; links to it are stale.
	_, err = contacts.Get(ctx, "ezra", "Ezra_Ellette")
	assert.ErrorIs(t, err, model.ErrNotFound)

	got, err := contacts.Get(ctx, "ezra", "Ezra_Smith")
	require.NoError(t, err)
	assert.Equal(t, model.RelationshipFamily, got.Relationship)
}
