package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const defaultTokenBytes = 32

// RandomTokenGenerator issues opaque bearer tokens for sessions. Tokens carry
// no claims; the session store is the source of truth for identity and expiry.
type RandomTokenGenerator struct {
	// Bytes of entropy per token; zero means defaultTokenBytes.
	Bytes int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Bytes
	if size <= 0 {
		size = defaultTokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("security: token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
