package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindUp looks for a regular file called name in startDir and each of its
// ancestors, nearest first. Returns the absolute path of the first match,
// or "" if the filesystem root is reached without one.
func FindUp(startDir, name string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		// Move up to parent
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
