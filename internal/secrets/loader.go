// Package secrets resolves credentials such as the API bearer token.
package secrets

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrNotConfigured = errors.New("secret is not configured")
	ErrTooShort      = errors.New("secret is too short")
)

// Source describes where a secret comes from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline secret from configuration or the environment.
	Value string
	// File holds the secret. It takes precedence over Value.
	File string
	// MinLength rejects secrets shorter than this many bytes. Zero disables the check.
	MinLength int
}

// Load returns the trimmed secret from File, or from Value when no file is set.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
	}

	secret := strings.TrimSpace(src.Value)
	switch {
	case secret == "" && file != "":
		return "", fmt.Errorf("%s file %q is empty: %w", name, file, ErrNotConfigured)
	case secret == "":
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	case len(secret) < src.MinLength:
		return "", fmt.Errorf("%s must be at least %d characters: %w", name, src.MinLength, ErrTooShort)
	}

	return secret, nil
}

// Equal compares a presented credential with the expected one in constant time.
func Equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
