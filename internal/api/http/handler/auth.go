package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/EzraElette/contacts-server/internal/logger"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	SignUp(ctx context.Context, username, password1, password2 string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type signupRequest struct {
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SignUp registers a new account.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing signup request",
		"username", req.Username)

	if err := h.authService.SignUp(r.Context(), req.Username, req.Password1, req.Password2); err != nil {
		h.logger.Error("Auth handler: signup failed",
			"username", req.Username,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"username", req.Username)

	writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}

// Login verifies credentials and returns a session token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing login request",
		"username", req.Username)

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"username", req.Username)

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username})
}
