//go:build windows

package singleinstance

import (
	"testing"

	"github.com/google/uuid"
)

func testLockName(t *testing.T) string {
	t.Helper()
	return `Local\quickpanel-test-` + uuid.NewString()
}
