package importer

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// ExpandPatterns resolves doublestar glob patterns to regular files,
// dropping anything matched by exclude. The result is sorted and free of
// duplicates.
func ExpandPatterns(patterns, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %q", pattern)
		}
		for _, m := range matches {
			if seen[m] || MatchesExclude(m, exclude) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// MatchesExclude returns true if the given path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(path, patterns)
}

// matchesAny checks if path matches any of the given glob patterns, either
// as a whole or by its base name.
func matchesAny(path string, patterns []string) bool {
	// Normalize to forward slashes for consistent matching.
	normalized := filepath.ToSlash(path)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
