//go:build !windows

package ipc

import (
	"os"
	"path/filepath"
	"testing"
)

// testEndpoint keeps the socket path short; t.TempDir can exceed the
// sun_path limit on macOS.
func testEndpoint(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "qp")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}
