// Package auth implements the key-based handshake and encrypted framing used
// between the console and the HID bridge daemon.
package auth

import (
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"errors"
)

const (
	AutoGenKeyLength = 16
	base62Chars      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	pbkdf2Iterations = 100000
	pbkdf2Salt       = "joyterm-key-v1"
)

// GenerateKey creates a random 16-char base62 access key.
func GenerateKey() (string, error) {
	raw := make([]byte, AutoGenKeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	key := make([]byte, AutoGenKeyLength)
	for i, b := range raw {
		key[i] = base62Chars[int(b)%62]
	}
	return string(key), nil
}

// DeriveKey stretches the access key to 32 bytes with PBKDF2.
func DeriveKey(key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("access key cannot be empty")
	}
	return pbkdf2.Key(sha256.New, key, []byte(pbkdf2Salt), pbkdf2Iterations, 32)
}

// DeriveSessionKey mixes the stretched key with both handshake nonces.
func DeriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte("joyterm-session-v1"))
	return h.Sum(nil)
}
