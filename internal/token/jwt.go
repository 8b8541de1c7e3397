package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EzraElette/contacts-server/internal/model"
)

// Claims represents JWT claims carrying the authenticated username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

const defaultTTL = 24 * time.Hour

// NewJWT creates a new JWT token manager with the provided secret key. A
// non-positive ttl falls back to the default session length.
func NewJWT(secretKey string, ttl time.Duration) model.TokenManager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWT{secretKey: secretKey, ttl: ttl}
}

// GenerateToken creates a signed session token for username.
func (j *JWT) GenerateToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseToken validates a session token and extracts the username.
func (j *JWT) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("session token is invalid")
	}
	if claims.Username == "" {
		return "", fmt.Errorf("session token has no username")
	}
	return claims.Username, nil
}
