// Package walk finds image files below a root directory.
package walk

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every .fit file at any depth.
const DefaultPattern = "**/*.fit"

// Find returns the regular files below root matching pattern, a glob
// relative to root that may use ** for any number of directories. root and
// the directory names below it are taken literally. Dot-files are skipped,
// as are entries that cannot be stat'ed and any file whose slash-separated
// path relative to root matches one of excludes. The order is the glob
// order and carries no meaning.
func Find(root, pattern string, excludes []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	if pattern == "" {
		pattern = DefaultPattern
	}

	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	for _, ex := range excludes {
		if !doublestar.ValidatePattern(ex) {
			return nil, fmt.Errorf("invalid exclude pattern %q", ex)
		}
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	var files []string

	for _, rel := range matches {
		if strings.HasPrefix(path.Base(rel), ".") {
			continue
		}

		if excluded(rel, excludes) {
			continue
		}

		full := filepath.Join(root, filepath.FromSlash(rel))

		// Dangling links and unreadable entries are not image files.
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		files = append(files, full)
	}

	return files, nil
}

func excluded(rel string, excludes []string) bool {
	for _, ex := range excludes {
		// Patterns were validated, so Match cannot fail.
		if ok, _ := doublestar.Match(ex, rel); ok {
			return true
		}
	}

	return false
}
