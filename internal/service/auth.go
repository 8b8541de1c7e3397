package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
	"github.com/EzraElette/contacts-server/internal/validate"
)

// Auth handles registration and login against the shared user table. Signup
// also creates the user's empty contact collection; the two steps form one
// logical unit.
type Auth struct {
	userStore    model.UserStore
	contactStore model.ContactStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	contactStore model.ContactStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		contactStore: contactStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// SignUp validates and registers a new account. Checks run in order: username
// taken, username shape, password mismatch, password length. No store
// mutation happens on a validation failure.
func (a *Auth) SignUp(ctx context.Context, username, password1, password2 string) error {
	a.logger.Debug("Auth service: processing signup",
		"username", username)

	exists, err := a.userStore.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if err := validate.Username(username, func(string) bool { return exists }); err != nil {
		return err
	}
	if err := validate.PasswordPair(password1, password2); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// The collection file is created first, exclusively, so a racing signup
	// of the same name loses here instead of clobbering the winner's data.
	// The user-table append is the commit point.
	if err := a.contactStore.CreateCollection(ctx, username); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if err := a.userStore.Create(ctx, model.User{Username: username, PasswordHash: string(hash)}); err != nil {
		if removeErr := a.contactStore.RemoveCollection(ctx, username); removeErr != nil {
			a.logger.Error("Auth service: failed to roll back collection after signup failure",
				"username", username,
				"error", removeErr.Error())
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username)

	return nil
}

// Login verifies credentials and issues a session token. An empty password
// fails without reading the user table; unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: processing login",
		"username", username)

	if password == "" {
		return "", model.ErrInvalidCredentials
	}

	user, err := a.userStore.Get(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.ErrInvalidCredentials
	}

	tokenString, err := a.tokenManager.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: login succeeded",
		"username", username)

	return tokenString, nil
}

// VerifyCredentials reports whether the username/password pair is valid. It
// never fails: unknown users, empty passwords and storage problems all read
// as false.
func (a *Auth) VerifyCredentials(ctx context.Context, username, password string) bool {
	if password == "" {
		return false
	}
	user, err := a.userStore.Get(ctx, username)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
