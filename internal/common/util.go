package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes of cryptographically secure random
// material. It panics if the system source of randomness is unavailable,
// which is not a recoverable condition for this service.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Useful for removing secret material from memory after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
