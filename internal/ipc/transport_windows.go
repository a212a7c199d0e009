//go:build windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os/user"
	"regexp"
	"strings"
	"time"

	"quickpanel/internal/userutil"

	"github.com/Microsoft/go-winio"
	"golang.org/x/sys/windows"
)

const pipePrefix = `\\.\pipe\quickpanel-`

// DefaultEndpoint returns the per-user named pipe.
func DefaultEndpoint() string {
	return pipePrefix + userutil.CurrentUsername()
}

func dial(endpoint string, timeout time.Duration) (net.Conn, error) {
	return winio.DialPipe(endpoint, &timeout)
}

// listen creates a pipe that only SYSTEM and the current user may open.
func listen(endpoint string) (net.Listener, error) {
	sd, err := pipeSecurityDescriptor()
	if err != nil {
		return nil, err
	}
	return winio.ListenPipe(endpoint, &winio.PipeConfig{
		SecurityDescriptor: sd,
		InputBufferSize:    maxFrameBytes,
		OutputBufferSize:   maxFrameBytes,
	})
}

var sidPattern = regexp.MustCompile(`^S-1(-\d+)+$`)

func pipeSecurityDescriptor() (string, error) {
	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolve current user: %w", err)
	}
	sid := strings.TrimSpace(current.Uid)
	if !sidPattern.MatchString(sid) {
		return "", fmt.Errorf("current user SID has unexpected format: %q", sid)
	}
	// Protected DACL: full access for SYSTEM and the current user only.
	return fmt.Sprintf("D:P(A;;GA;;;SY)(A;;GA;;;%s)", sid), nil
}

func isPlatformConnectionError(err error) bool {
	return errors.Is(err, windows.ERROR_FILE_NOT_FOUND) ||
		errors.Is(err, windows.ERROR_PIPE_BUSY) ||
		errors.Is(err, winio.ErrTimeout)
}
