package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainListener_Listen(t *testing.T) {
	l := NewPlainListener()

	listener, err := l.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NotEmpty(t, listener.Addr().String())
}

func TestTLSListener_MissingCertificate(t *testing.T) {
	l := NewTLSListener("does-not-exist.pem", "does-not-exist-key.pem")

	_, err := l.Listen("tcp", "127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load TLS certificate")
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(nil, ":8080")
	assert.Equal(t, ":8080", s.Address())
}
