package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EzraElette/contacts-server/internal/testutil"
)

func TestLogging_PassesThrough(t *testing.T) {
	l := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	l.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	l := NewLogging(testutil.MakeNoopLogger())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // implicit 200
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	l.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
