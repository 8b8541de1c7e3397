package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/EzraElette/contacts-server/internal/api/http/hctx"
	"github.com/EzraElette/contacts-server/internal/testutil"
)

// MockTokenService mocks the TokenService interface
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) ParseToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func TestAuthenticate_Handle(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		setupMock    func(*MockTokenService)
		wantStatus   int
		wantUsername string
	}{
		{
			name:   "valid token",
			header: "Bearer good-token",
			setupMock: func(m *MockTokenService) {
				m.On("ParseToken", "good-token").Return("ezra", nil)
			},
			wantStatus:   http.StatusOK,
			wantUsername: "ezra",
		},
		{
			name:       "missing header",
			header:     "",
			setupMock:  func(m *MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			setupMock:  func(m *MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer bad-token",
			setupMock: func(m *MockTokenService) {
				m.On("ParseToken", "bad-token").Return("", assert.AnError)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := &MockTokenService{}
			tt.setupMock(tokenService)

			ctxMgr := hctx.NewManager()
			m := NewAuthenticate(tokenService, ctxMgr, testutil.MakeNoopLogger())

			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername, _ = ctxMgr.Username(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUsername != "" {
				assert.Equal(t, tt.wantUsername, gotUsername)
			}
		})
	}
}
