// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adala

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation so callers can branch on the cause
// without parsing error text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport covers connection failures, timeouts and cancelled contexts.
	KindTransport
	// KindStatus is a non-2xx HTTP response.
	KindStatus
	// KindMalformed is a response body that does not have the expected shape.
	KindMalformed
	// KindStaleBuildID means the configured build ID is probably out of date:
	// the data endpoint answered 404 or returned HTML instead of JSON.
	KindStaleBuildID
	// KindFilesystem covers directory creation and file write failures.
	KindFilesystem
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindStaleBuildID:
		return "stale_build_id"
	case KindFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// Error is the error type returned by Client operations.
type Error struct {
	Kind Kind
	// Op names the operation that failed ("search", "download", "discover").
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ErrBuildIDNotFound is returned when a page carries no recognizable build ID.
var ErrBuildIDNotFound = errors.New("no build ID found in page")

// errHTMLResponse marks a data endpoint response that came back as HTML.
var errHTMLResponse = errors.New("response is HTML, not JSON")

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
