package workflows

import (
	"context"

	"github.com/PolarWolf314/autoarchive/internal/audit"
	"github.com/PolarWolf314/autoarchive/internal/secrets"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	// Length defaults to secrets.DefaultPasswordLength.
	Length int
	// Count defaults to 1.
	Count int
}

// Generate returns opts.Count passwords without recording them anywhere.
//
// Returns ErrInvalidLength if opts.Length is negative.
func Generate(ctx context.Context, deps Deps, opts GenerateOptions) ([]string, error) {
	length := opts.Length
	if length == 0 {
		length = secrets.DefaultPasswordLength
	}
	count := opts.Count
	if count < 1 {
		count = 1
	}

	passwords := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pw, err := secrets.GeneratePassword(length)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}

	deps.Audit.Log(audit.Entry{Operation: audit.OpGenerate, AddedCount: count})
	return passwords, nil
}
