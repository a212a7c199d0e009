//go:build windows

package ipc

import (
	"testing"

	"github.com/google/uuid"
)

func testEndpoint(t *testing.T) string {
	t.Helper()
	return pipePrefix + "test-" + uuid.NewString()
}
