// Package files turns command-line arguments into the list of log files to scan.
package files

import (
	"os"
	"path/filepath"
)

// ExpandGlobs expands paths and glob patterns into existing regular files.
// Arguments are processed in order and each file is returned once, at its
// first occurrence. Matches of a single glob are in lexical order. An
// argument naming an existing path is taken literally even when it contains
// glob metacharacters, and so is a pattern that is not a valid glob.
// Anything that does not exist or is not a regular file is returned in
// skipped instead.
func ExpandGlobs(patterns []string) (found, skipped []string) {
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches := []string{pattern}
		if !exists(pattern) {
			if m, err := filepath.Glob(pattern); err == nil && len(m) > 0 {
				matches = m
			}
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			if isRegularFile(match) {
				found = append(found, match)
			} else {
				skipped = append(skipped, match)
			}
		}
	}

	return found, skipped
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
