package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const verificationTokenBytes = 16

type randomTokenGenerator struct {
	size int
}

// NewTokenGenerator returns a [TokenGenerator] producing 16 random bytes
// encoded as unpadded base64url (22 characters).
func NewTokenGenerator() TokenGenerator {
	return &randomTokenGenerator{size: verificationTokenBytes}
}

func (g *randomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
