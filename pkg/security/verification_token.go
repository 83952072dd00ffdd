package security

import (
	"crypto/rand"
	"encoding/hex"
)

const verificationTokenSize = 20

// NewVerificationToken returns a random hex token mailed to new users to
// prove they own their address
func NewVerificationToken() (string, error) {
	b := make([]byte, verificationTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
