package id

import "crypto/rand"

// GenerateID creates a unique 16-character lowercase alphanumeric ID.
// Bundle IDs use this format so they are safe in URLs and filenames.
func GenerateID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
