// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import "fmt"

// APIError reports a failed E-utilities request: a transport failure or a
// non-success HTTP status. StatusCode is zero when no response arrived.
type APIError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s request: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }
