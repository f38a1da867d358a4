package apiclient

import (
	"errors"
	"fmt"
)

// NetworkError covers timeouts and connectivity failures, anything where no
// HTTP response was obtained. Always retryable.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a 4xx/5xx answer, carrying the server's message from the
// response envelope.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// StorageError is a durable device-storage read/write failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ChannelError is a realtime subscription or transport failure.
type ChannelError struct {
	Channel string
	Err     error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Channel, e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }

// AsHTTPError extracts an HTTPError when err carries one.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// IsRetryable reports whether repeating the call may succeed: network
// failures and 5xx answers. The client never retries on its own; screens
// decide based on this.
func IsRetryable(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	if he, ok := AsHTTPError(err); ok {
		return he.StatusCode >= 500
	}
	var ce *ChannelError
	return errors.As(err, &ce)
}
