// Package id generates opaque tokens using NanoID.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// slugAlphabet restricts tokens to the slug character set (lowercase
// alphanumerics), so a generated token is itself a valid slug base.
const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a prefixed unique token, e.g. "item-x41k2m9p0qzr".
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	token, err := gonanoid.Generate(slugAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + token, nil
}

// MustGenerate is like Generate but panics on failure. Use only where a
// failed token generation should crash the program.
func MustGenerate(prefix string) string {
	token, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return token
}
