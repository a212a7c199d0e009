// Package ipc lets a second quickpanel launch ask the running instance to
// bring its window forward. Requests and responses are single JSON lines.
package ipc

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CommandActivateWindow asks the running instance to reveal its window.
const CommandActivateWindow = "activate-window"

// Request is one client command.
type Request struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Handler serves decoded requests.
type Handler interface {
	Handle(req Request) Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req Request) Response

// Handle calls f.
func (f HandlerFunc) Handle(req Request) Response { return f(req) }

// NewRequest builds a request with a fresh ID.
func NewRequest(command string) Request {
	return Request{ID: uuid.NewString(), Command: command}
}

// ErrorResponse builds a failed response for req.
func ErrorResponse(req Request, msg string) Response {
	return Response{ID: req.ID, OK: false, Error: msg}
}

func encodeFrame(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(raw, '\n'), nil
}

func decodeRequest(raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, err
	}
	req.Command = strings.TrimSpace(req.Command)
	if req.Command == "" {
		return Request{}, errors.New("command is required")
	}
	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			return Request{}, errors.New("request id must be a UUID")
		}
	}
	return req, nil
}

func decodeResponse(raw []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
