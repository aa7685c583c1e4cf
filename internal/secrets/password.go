package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// DefaultPasswordLength is the length used when the caller has no preference.
const DefaultPasswordLength = 16

// PasswordAlphabet holds every character a generated password may contain.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!@#$%^&*"

// GeneratePassword returns a random password of exactly length characters.
func GeneratePassword(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: got %d", kerrors.ErrInvalidLength, length)
	}

	max := big.NewInt(int64(len(PasswordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = PasswordAlphabet[n.Int64()]
	}

	return string(out), nil
}
