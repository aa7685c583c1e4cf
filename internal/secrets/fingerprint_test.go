package secrets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestFingerprintKnownDigests(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"empty file", []byte{}, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"hello world", []byte("hello world"), "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, tt.content)
			got, err := Fingerprint(path)
			if err != nil {
				t.Fatalf("Fingerprint failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Fingerprint = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	dir := t.TempDir()

	// Spans several chunks and ends mid-chunk.
	multiChunk := bytes.Repeat([]byte("0123456789abcdef"), chunkSize/16*3+7)

	cases := map[string][]byte{
		"empty":       {},
		"one-byte":    {0x42},
		"multi-chunk": multiChunk,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			a := writeFile(t, dir, name+"-a", content)
			b := writeFile(t, dir, name+"-b", content)

			fa, err := Fingerprint(a)
			if err != nil {
				t.Fatalf("Fingerprint(a) failed: %v", err)
			}
			fb, err := Fingerprint(b)
			if err != nil {
				t.Fatalf("Fingerprint(b) failed: %v", err)
			}

			if fa != fb {
				t.Errorf("Identical content produced different digests: %s vs %s", fa, fb)
			}
			if !hexDigest.MatchString(fa) {
				t.Errorf("Digest %q is not 64 lowercase hex characters", fa)
			}

			fr, err := FingerprintReader(bytes.NewReader(content))
			if err != nil {
				t.Fatalf("FingerprintReader failed: %v", err)
			}
			if fr != fa {
				t.Errorf("FingerprintReader = %s, Fingerprint = %s", fr, fa)
			}
		})
	}
}

func TestFingerprintDetectsSingleByteChange(t *testing.T) {
	dir := t.TempDir()

	original := bytes.Repeat([]byte{0xAA}, chunkSize*2+1)
	changed := bytes.Clone(original)
	changed[chunkSize+3] ^= 0x01

	oneByte := writeFile(t, dir, "one", []byte{0x00})
	otherByte := writeFile(t, dir, "other", []byte{0x01})
	big := writeFile(t, dir, "big", original)
	bigChanged := writeFile(t, dir, "big-changed", changed)

	pairs := [][2]string{{oneByte, otherByte}, {big, bigChanged}}
	for _, pair := range pairs {
		fa, err := Fingerprint(pair[0])
		if err != nil {
			t.Fatalf("Fingerprint failed: %v", err)
		}
		fb, err := Fingerprint(pair[1])
		if err != nil {
			t.Fatalf("Fingerprint failed: %v", err)
		}
		if fa == fb {
			t.Errorf("Files %s and %s differ but share digest %s", pair[0], pair[1], fa)
		}
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "missing.7z"))
	if !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("Expected ErrIO for missing file, got %v", err)
	}
}

type failingReader struct{ after int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after <= 0 {
		return 0, errors.New("disk went away")
	}
	n := len(p)
	if n > r.after {
		n = r.after
	}
	r.after -= n
	return n, nil
}

func TestFingerprintReaderMidStreamFailure(t *testing.T) {
	_, err := FingerprintReader(&failingReader{after: chunkSize + 10})
	if !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("Expected ErrIO for mid-stream failure, got %v", err)
	}
}

func TestLegacyFingerprint(t *testing.T) {
	path := writeFile(t, t.TempDir(), "archive.7z", []byte("hello world"))

	got, err := LegacyFingerprint(path)
	if err != nil {
		t.Fatalf("LegacyFingerprint failed: %v", err)
	}
	if got != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("LegacyFingerprint = %s", got)
	}
	if len(got) != LegacyFingerprintLength {
		t.Errorf("Expected %d characters, got %d", LegacyFingerprintLength, len(got))
	}
}

func TestFingerprintsMatchSeparateDigests(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("video frame "), chunkSize/4)
	path := writeFile(t, dir, "movie.7z", content)

	fp, legacy, err := Fingerprints(path)
	if err != nil {
		t.Fatalf("Fingerprints failed: %v", err)
	}

	wantFP, _ := Fingerprint(path)
	wantLegacy, _ := LegacyFingerprint(path)
	if fp != wantFP {
		t.Errorf("SHA-256 = %s, want %s", fp, wantFP)
	}
	if legacy != wantLegacy {
		t.Errorf("MD5 = %s, want %s", legacy, wantLegacy)
	}

	hello := writeFile(t, dir, "hello.txt", []byte("hello world"))
	fp, legacy, err = Fingerprints(hello)
	if err != nil {
		t.Fatalf("Fingerprints failed: %v", err)
	}
	if fp != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" || legacy != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("Fingerprints(hello world) = %s, %s", fp, legacy)
	}

	if _, _, err := Fingerprints(filepath.Join(dir, "missing.7z")); !errors.Is(err, kerrors.ErrIO) {
		t.Errorf("Expected ErrIO for missing file, got %v", err)
	}
}
