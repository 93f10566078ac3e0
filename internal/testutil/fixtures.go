package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DataDir creates a temporary data directory populated with files.
// Keys are slash-separated paths relative to the directory; parent
// directories are created as needed. The directory is removed when the
// test finishes.
func DataDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Symlink creates a symlink at dir/name pointing to target, skipping the
// test on platforms where symlinks are unavailable.
func Symlink(t *testing.T, target, dir, name string) string {
	t.Helper()

	link := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return link
}
