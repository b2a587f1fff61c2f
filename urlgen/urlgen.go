// Package urlgen generates short codes for the sandbox backend.
package urlgen

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// charset defines the character set used for generating short codes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the length of generated short codes.
const DefaultLength = 8

// Generate creates a new short code of DefaultLength characters.
func Generate() (string, error) {
	return GenerateN(DefaultLength)
}

// GenerateN creates a new short code of the given length.
func GenerateN(length int) (string, error) {
	return gonanoid.Generate(charset, length)
}
