package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"time"
)

const (
	dialTimeout   = 3 * time.Second
	clientTimeout = 10 * time.Second
)

// Send delivers one request to endpoint and waits for its response. An empty
// endpoint means DefaultEndpoint.
func Send(endpoint string, req Request) (Response, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint()
	}
	if req.ID == "" {
		req = NewRequest(req.Command)
	}

	conn, err := dial(endpoint, dialTimeout)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(clientTimeout)); err != nil {
		return Response{}, fmt.Errorf("set deadline: %w", err)
	}
	frame, err := encodeFrame(req)
	if err != nil {
		return Response{}, err
	}
	if _, err := conn.Write(frame); err != nil {
		return Response{}, err
	}

	raw, err := readFrame(bufio.NewReaderSize(conn, maxFrameBytes+1))
	if err != nil {
		return Response{}, err
	}
	resp, err := decodeResponse(raw)
	if err != nil {
		return Response{}, fmt.Errorf("invalid response: %w", err)
	}
	if resp.ID != req.ID {
		return Response{}, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	return resp, nil
}

// Activate asks the instance listening on endpoint to reveal its window.
func Activate(endpoint string) error {
	resp, err := Send(endpoint, NewRequest(CommandActivateWindow))
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("activate-window rejected: %s", resp.Error)
	}
	return nil
}

// IsConnectionError reports whether err means no server is listening.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" || opErr.Op == "open"
	}
	return isPlatformConnectionError(err)
}
