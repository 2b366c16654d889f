package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a square QR code PNG of the given pixel size for content.
func Generate(content string, size int) ([]byte, error) {
	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}

// JoinURL is the link a phone follows to join a lobby.
func JoinURL(base, gameID string) string {
	return strings.TrimRight(base, "/") + "/lobby.html?game=" + url.QueryEscape(gameID)
}
