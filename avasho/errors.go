package avasho

import "fmt"

// InvalidArgumentError reports a request rejected before anything was sent.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("avasho: invalid %s: %s", e.Field, e.Reason)
}

// GatewayError is returned when the gateway answers with a non-2xx status.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e GatewayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("avasho gateway error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("avasho gateway error (status %d): %s", e.StatusCode, e.Body)
}

// ProtocolError is returned when a 2xx response does not have the documented shape.
type ProtocolError struct {
	Reason string
	Body   string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("avasho protocol error: %s", e.Reason)
}

// TransportError wraps failures to send the request or read the response.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("avasho transport error: failed to %s: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}
