package workflows

import (
	"context"

	"github.com/PolarWolf314/autoarchive/internal/secrets"
)

// FingerprintOptions configures the fingerprint workflow.
type FingerprintOptions struct {
	// Patterns are files, directories or globs. Directories and globs match any file.
	Patterns []string
	BaseDir  string

	// Legacy also computes the MD5 digest older catalogs are keyed by.
	Legacy bool
}

// FileFingerprint is the digest of one file.
type FileFingerprint struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	MD5    string `json:"md5,omitempty"`
}

// Fingerprint computes content digests for every matched file.
func Fingerprint(ctx context.Context, opts FingerprintOptions) ([]FileFingerprint, error) {
	files, err := ResolveFiles(opts.Patterns, opts.BaseDir, "")
	if err != nil {
		return nil, err
	}

	results := make([]FileFingerprint, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fp := FileFingerprint{Path: f}
		if opts.Legacy {
			fp.SHA256, fp.MD5, err = secrets.Fingerprints(f)
		} else {
			fp.SHA256, err = secrets.Fingerprint(f)
		}
		if err != nil {
			return nil, err
		}
		results = append(results, fp)
	}

	return results, nil
}
