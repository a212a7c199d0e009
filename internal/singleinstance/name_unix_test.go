//go:build !windows

package singleinstance

import (
	"path/filepath"
	"testing"
)

func testLockName(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "quickpanel.lock")
}
