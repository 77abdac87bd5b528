package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. The dispatcher never branches on them; they exist for logs,
// metrics and errors.Is in tests.
var (
	ErrNetwork = errors.New("network failure")
	ErrStatus  = errors.New("unexpected status")
	ErrDecode  = errors.New("malformed payload")
)

// StatusError is a non-success HTTP response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return e.Status
	}
	return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is(err, ErrStatus) match any StatusError
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// RequestError is the single failure type a gateway call returns. Its
// message is ready for the error line ("Network error: ...",
// "Invalid token: 401 Unauthorized", "Failed to parse guilds: ...").
type RequestError struct {
	Op   string // operation name, e.g. "fetch_guilds"
	Kind error  // ErrNetwork, ErrStatus or ErrDecode
	msg  string
	Err  error
}

func (e *RequestError) Error() string {
	return e.msg
}

func (e *RequestError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func networkError(op string, err error) *RequestError {
	return &RequestError{Op: op, Kind: ErrNetwork, Err: err, msg: fmt.Sprintf("Network error: %v", err)}
}

// statusError describes a non-success response. what completes "Failed to
// <what>"; verify_identity reports "Invalid token" instead.
func statusError(op, what string, resp *http.Response) *RequestError {
	se := &StatusError{Code: resp.StatusCode, Status: resp.Status}
	msg := fmt.Sprintf("Failed to %s: %s", what, se)
	if op == OpVerifyIdentity {
		msg = fmt.Sprintf("Invalid token: %s", se)
	}
	return &RequestError{Op: op, Kind: ErrStatus, Err: se, msg: msg}
}

func decodeError(op, resource string, err error) *RequestError {
	return &RequestError{Op: op, Kind: ErrDecode, Err: err, msg: fmt.Sprintf("Failed to parse %s: %v", resource, err)}
}

// Kind returns the failure class of err for labelling, or "ok" for nil
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "error"
	}
}
