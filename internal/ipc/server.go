package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"quickpanel/internal/workerutil"
)

const (
	serverConnTimeout  = 10 * time.Second
	maxConcurrentConns = 8
)

// Server answers requests from other quickpanel processes.
type Server struct {
	endpoint string
	handler  Handler

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	slots    chan struct{}
}

// NewServer builds a server for endpoint. An empty endpoint means
// DefaultEndpoint.
func NewServer(endpoint string, handler Handler) *Server {
	if endpoint == "" {
		endpoint = DefaultEndpoint()
	}
	return &Server{
		endpoint: endpoint,
		handler:  handler,
		slots:    make(chan struct{}, maxConcurrentConns),
	}
}

// Endpoint returns the listen address.
func (s *Server) Endpoint() string { return s.endpoint }

// Start begins accepting connections. ctx bounds the accept loop.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return errors.New("ipc server already started")
	}
	if s.handler == nil {
		return errors.New("ipc server requires a handler")
	}
	listener, err := listen(s.endpoint)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.endpoint, err)
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.listener = listener
	s.cancel = cancel

	workerutil.RunWithPanicRecovery(loopCtx, "ipc-accept", &s.wg, func(ctx context.Context) {
		s.acceptLoop(ctx, listener)
	}, workerutil.RecoveryOptions{})
	slog.Info("[ipc] listening", "endpoint", s.endpoint)
	return nil
}

// Stop closes the listener and waits for in-flight connections.
func (s *Server) Stop() error {
	s.mu.Lock()
	listener := s.listener
	cancel := s.cancel
	s.listener = nil
	s.cancel = nil
	s.mu.Unlock()
	if listener == nil {
		return nil
	}

	cancel()
	err := listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop(ctx context.Context, listener net.Listener) {
	failures := 0
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			failures++
			if failures > 10 {
				slog.Warn("[ipc] repeated accept failures", "error", err, "count", failures)
				time.Sleep(500 * time.Millisecond)
			} else {
				slog.Debug("[ipc] accept error", "error", err)
			}
			continue
		}
		failures = 0

		select {
		case s.slots <- struct{}{}:
		default:
			slog.Warn("[ipc] too many connections, rejecting client")
			s.writeResponse(conn, Response{OK: false, Error: "server busy"})
			conn.Close()
			continue
		}
		s.wg.Go(func() {
			defer func() { <-s.slots }()
			s.serve(conn)
		})
	}
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(serverConnTimeout)); err != nil {
		slog.Warn("[ipc] failed to set connection deadline", "error", err)
		return
	}

	raw, err := readFrame(bufio.NewReaderSize(conn, maxFrameBytes+1))
	if errors.Is(err, io.EOF) {
		slog.Debug("[ipc] client closed without a request")
		return
	}
	if err != nil {
		s.writeResponse(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	req, err := decodeRequest(raw)
	if err != nil {
		s.writeResponse(conn, Response{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	slog.Debug("[ipc] request received", "id", req.ID, "command", req.Command)
	resp := s.handler.Handle(req)
	resp.ID = req.ID
	s.writeResponse(conn, resp)
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	frame, err := encodeFrame(resp)
	if err != nil {
		slog.Warn("[ipc] failed to encode response", "error", err)
		return
	}
	if _, err := conn.Write(frame); err != nil {
		slog.Debug("[ipc] failed to write response", "error", err)
	}
}
