package model

import "context"

// UserStore defines persistence operations for the shared user table.
type UserStore interface {
	Get(ctx context.Context, username string) (User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user User) error
}

// User represents a registered account. PasswordHash is the full bcrypt
// output including algorithm parameters and salt; the plaintext is never
// stored.
type User struct {
	Username     string
	PasswordHash string
}
