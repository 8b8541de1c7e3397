package model

// TokenManager generates and validates session tokens.
type TokenManager interface {
	GenerateToken(username string) (string, error)
	ParseToken(token string) (string, error)
}
