package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const maxFrameBytes = 16 * 1024

// readFrame reads one newline-terminated frame. A final frame without a
// newline is accepted.
func readFrame(reader *bufio.Reader) ([]byte, error) {
	raw, err := reader.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return nil, fmt.Errorf("frame exceeds %d bytes", maxFrameBytes)
	case errors.Is(err, io.EOF):
		if len(raw) == 0 {
			return nil, io.EOF
		}
		return raw, nil
	case err != nil:
		return nil, err
	}
	return raw, nil
}
