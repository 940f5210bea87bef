package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleTSV is the two-column file used across tests:
// A = [2, 4], B = [3, 5].
const SampleTSV = "label\tA\tB\n1\t2.0\t3.0\n2\t4.0\t5.0\n"

// TSV joins rows of fields into tab-separated text with a trailing newline.
func TSV(rows ...[]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

// TempDir creates a temporary directory for testing.
// Returns the dir path and a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "colplot-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
