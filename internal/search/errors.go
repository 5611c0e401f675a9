// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrTransport marks network failures and non-success HTTP statuses.
	ErrTransport = errors.New("transport error")

	// ErrFormat marks responses missing the expected shape.
	ErrFormat = errors.New("format error")
)

// TransportError is returned when a request could not be completed or the
// server answered with a non-200 status.
type TransportError struct {
	// Endpoint names the E-utility that failed (esearch, esummary).
	Endpoint string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the cause and the ErrTransport sentinel.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// FormatError is returned when a response body cannot be decoded or lacks
// an expected field.
type FormatError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s response: %s", e.Endpoint, e.Reason)
}

// Unwrap exposes the cause and the ErrFormat sentinel.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}
