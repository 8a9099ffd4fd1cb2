package security

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID returns prefix followed by a random uppercase alphanumeric
// suffix of the given length. The suffix is not cryptographically random;
// uniqueness rests on the keyspace alone.
func GenerateID(prefix string, length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = idAlphabet[mrand.Intn(len(idAlphabet))]
	}
	return prefix + string(buf)
}

// GenerateSecureToken returns 32 random bytes hex encoded, for values that
// must not be guessable.
func GenerateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
