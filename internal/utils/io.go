package utils

import (
	"fmt"
	"io"
	"strings"
)

// ReadSecret reads a single value such as an API token from r.
// Surrounding whitespace, including the trailing newline of `echo`, is dropped.
func ReadSecret(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("secret is empty")
	}
	return secret, nil
}
