package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
)

var errMissingToken = errors.New("missing authorization token")

// TokenService resolves usernames from bearer tokens.
type TokenService interface {
	ParseToken(token string) (string, error)
}

// Authenticate validates bearer tokens and injects the username into the
// request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and passes the
// request on with the username in its context. Requests without a valid
// token get 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := m.authenticate(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authorization required"})
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.WithUsername(r.Context(), username)))
	})
}

func (m *Authenticate) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errMissingToken
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return "", errMissingToken
	}

	username, err := m.tokenService.ParseToken(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return "", err
	}

	return username, nil
}
