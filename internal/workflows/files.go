package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/PolarWolf314/autoarchive/internal/errors"
	"github.com/PolarWolf314/autoarchive/internal/utils"
)

// ResolveFiles expands patterns into a deduplicated list of files.
//
// Each pattern may be a file, a directory (walked recursively) or a glob
// with ** support. Relative patterns are resolved against baseDir. When
// ext is non-empty, files found through directories and globs must carry
// that extension; files named explicitly are always accepted.
//
// Returns ErrNoFilesFound if nothing matches.
func ResolveFiles(patterns []string, baseDir, ext string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, kerrors.ErrNoFilesFound
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir, ext)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, strings.Join(patterns, ", "))
	}

	return files, nil
}

func resolvePattern(pattern, baseDir, ext string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	if utils.IsDir(absPattern) {
		return findFilesInDir(absPattern, ext)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern, ext)
	}

	exists, err := utils.PathExists(absPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrIO, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSourceNotFound, pattern)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern, ext string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if hasExt(m, ext) {
			filtered = append(filtered, m)
		}
	}

	sort.Strings(filtered)
	return filtered, nil
}

func findFilesInDir(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if hasExt(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", kerrors.ErrIO, dir, err)
	}

	return files, nil
}

func hasExt(path, ext string) bool {
	return ext == "" || strings.EqualFold(filepath.Ext(path), ext)
}
