package secrets

import (
	"crypto/md5" // #nosec G501 -- only used to resolve records written by the original tool
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// chunkSize bounds how much of the file is held in memory at once.
const chunkSize = 64 * 1024

// FingerprintLength is the number of hex characters in a fingerprint.
const FingerprintLength = sha256.Size * 2

// LegacyFingerprintLength is the number of hex characters in an MD5 fingerprint.
const LegacyFingerprintLength = md5.Size * 2

// Fingerprint returns the lowercase hex SHA-256 digest of the file at path.
func Fingerprint(path string) (string, error) {
	return digestFile(path, sha256.New())
}

// LegacyFingerprint returns the lowercase hex MD5 digest of the file at path.
func LegacyFingerprint(path string) (string, error) {
	return digestFile(path, md5.New()) // #nosec G401
}

// Fingerprints returns the SHA-256 and MD5 digests of the file at path,
// reading it once.
func Fingerprints(path string) (fingerprint, legacy string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: opening %s: %v", kerrors.ErrIO, path, err)
	}
	defer f.Close()

	sha, sum := sha256.New(), md5.New() // #nosec G401
	if _, err := io.CopyBuffer(io.MultiWriter(sha, sum), f, make([]byte, chunkSize)); err != nil {
		return "", "", fmt.Errorf("%s: %w: reading content: %v", path, kerrors.ErrIO, err)
	}
	return hex.EncodeToString(sha.Sum(nil)), hex.EncodeToString(sum.Sum(nil)), nil
}

// FingerprintReader returns the lowercase hex SHA-256 digest of everything read from r.
func FingerprintReader(r io.Reader) (string, error) {
	return digest(r, sha256.New())
}

func digestFile(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", kerrors.ErrIO, path, err)
	}
	defer f.Close()

	sum, err := digest(f, h)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return sum, nil
}

func digest(r io.Reader, h hash.Hash) (string, error) {
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: reading content: %v", kerrors.ErrIO, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
