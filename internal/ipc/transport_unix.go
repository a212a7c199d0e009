//go:build !windows

package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"quickpanel/internal/userutil"

	"golang.org/x/sys/unix"
)

// DefaultEndpoint returns the per-user socket path. XDG_RUNTIME_DIR is
// already private to the user. The shared temp directory is not, so there
// the socket goes into a per-user subdirectory that listen creates with
// mode 0700.
func DefaultEndpoint() string {
	name := "quickpanel-" + userutil.CurrentUsername()
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, name+".sock")
	}
	return filepath.Join(os.TempDir(), name, "ipc.sock")
}

func dial(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}

// listen binds the socket, replacing a stale file left by a crashed
// instance. The socket is readable and writable by the owner only.
//
// NOTE: the socket is created with the process umask and only chmod-ed
// afterwards. The containing directory being private closes that window:
// no other user can reach the socket before the chmod.
func listen(endpoint string) (net.Listener, error) {
	if err := ensurePrivateDir(filepath.Dir(endpoint)); err != nil {
		return nil, err
	}
	if _, err := os.Stat(endpoint); err == nil {
		if conn, dialErr := dial(endpoint, 200*time.Millisecond); dialErr == nil {
			conn.Close()
			return nil, fmt.Errorf("socket %s is in use", endpoint)
		}
		if err := os.Remove(endpoint); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}
	listener, err := net.Listen("unix", endpoint)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(endpoint, 0o600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("restrict socket permissions: %w", err)
	}
	return listener, nil
}

// ensurePrivateDir creates dir with mode 0700, or verifies that an existing
// dir belongs to the current user and tightens its mode to 0700. A
// directory owned by someone else is refused: its owner could swap the
// socket.
func ensurePrivateDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	var st unix.Stat_t
	if err := unix.Lstat(dir, &st); err != nil {
		return fmt.Errorf("stat socket dir: %w", err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return fmt.Errorf("socket dir %s is not a directory", dir)
	}
	if int(st.Uid) != os.Getuid() {
		return fmt.Errorf("socket dir %s is owned by uid %d, not the current user", dir, st.Uid)
	}
	if st.Mode&0o077 != 0 {
		if err := os.Chmod(dir, 0o700); err != nil {
			return fmt.Errorf("restrict socket dir permissions: %w", err)
		}
	}
	return nil
}

func isPlatformConnectionError(err error) bool {
	return errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED)
}
