package qrcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/qrcode"
)

func TestGeneratePNG(t *testing.T) {
	png, err := qrcode.Generate("http://localhost:8080/lobby.html?game=abc", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "http://host:8080/lobby.html?game=a+b", qrcode.JoinURL("http://host:8080/", "a b"))
	assert.Equal(t, "https://x/lobby.html?game=g1", qrcode.JoinURL("https://x", "g1"))
}
