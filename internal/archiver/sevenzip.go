package archiver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
)

// DefaultPath is where the 7-Zip installer puts the command line tool on Windows.
const DefaultPath = `C:\Program Files\7-Zip\7z.exe`

// maxStderr caps how much tool output is quoted in an error.
const maxStderr = 2048

// Archiver creates and extracts password-protected archives.
type Archiver interface {
	Create(ctx context.Context, source, output, password string) error
	Extract(ctx context.Context, archive, password, outDir string) error
}

// SevenZip runs the 7z command line tool.
type SevenZip struct {
	// Path is the executable. A bare name is looked up in PATH.
	Path string
	// CompressionLevel is passed as -mx, 0 (store) to 9 (ultra).
	CompressionLevel int
	// Stdout and Stderr, when set, receive the tool's output as it runs.
	// Stderr is captured for errors either way.
	Stdout, Stderr io.Writer
}

// New returns a SevenZip for the executable at path.
func New(path string, compressionLevel int) *SevenZip {
	if path == "" {
		path = DefaultPath
	}
	return &SevenZip{Path: path, CompressionLevel: compressionLevel}
}

// Create archives source into output, encrypting content and headers with password.
func (z *SevenZip) Create(ctx context.Context, source, output, password string) error {
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("%w: %s", kerrors.ErrSourceNotFound, source)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", kerrors.ErrIO, err)
	}

	return z.run(ctx, CreateArgs(source, output, password, z.CompressionLevel))
}

// Extract unpacks archive into outDir, overwriting existing files.
func (z *SevenZip) Extract(ctx context.Context, archive, password, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("%w: creating restore directory: %v", kerrors.ErrIO, err)
	}

	return z.run(ctx, ExtractArgs(archive, password, outDir))
}

// CreateArgs returns the 7z arguments for Create.
func CreateArgs(source, output, password string, level int) []string {
	return []string{"a", output, source, "-p" + password, "-mhe=on", fmt.Sprintf("-mx=%d", level)}
}

// ExtractArgs returns the 7z arguments for Extract.
func ExtractArgs(archive, password, outDir string) []string {
	return []string{"x", archive, "-p" + password, "-o" + outDir, "-y"}
}

func (z *SevenZip) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, z.Path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if z.Stderr != nil {
		cmd.Stderr = io.MultiWriter(z.Stderr, &stderr)
	}
	if z.Stdout != nil {
		cmd.Stdout = z.Stdout
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrArchiverNotFound, z.Path, err)
	}

	// The password is part of the command line, so it is never echoed back.
	msg := strings.TrimSpace(stderr.String())
	if len(msg) > maxStderr {
		msg = msg[:maxStderr] + "..."
	}
	if msg == "" {
		return fmt.Errorf("%w: %s %s: %v", kerrors.ErrArchiver, filepath.Base(z.Path), args[0], err)
	}
	return fmt.Errorf("%w: %s %s: %v: %s", kerrors.ErrArchiver, filepath.Base(z.Path), args[0], err, msg)
}
