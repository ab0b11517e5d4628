// Package errs defines the error taxonomy shared by the salz core and
// the surrounding job/CLI layers. Every error the core returns carries
// a Kind so callers can branch on failure category without string
// matching, while still getting pkg/errors-style stack traces through
// Wrapf.
package errs

import (
	"github.com/pkg/errors"
)

// Kind identifies the category of a *Error.
type Kind int32

const (
	KindUnknown Kind = iota
	// KindInsufficientDestination means a destination buffer (or a
	// segment length field) could not hold the result.
	KindInsufficientDestination
	// KindMalformedStream means a decode-side structural invariant
	// was violated (bad header, truncated body, invalid token).
	KindMalformedStream
	// KindSuffixArrayFailed means the configured suffixarray.Builder
	// reported an internal failure.
	KindSuffixArrayFailed
	// KindAllocationFailure means a required scratch allocation
	// (arena, bit buffer) could not be sized.
	KindAllocationFailure
	// KindDuplicateJob means a job was registered under a name that
	// already has a job in flight.
	KindDuplicateJob
	// KindJobNotFound means a lookup or stop was attempted against a
	// job name with no registered entry.
	KindJobNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInsufficientDestination:
		return "insufficient destination"
	case KindMalformedStream:
		return "malformed stream"
	case KindSuffixArrayFailed:
		return "suffix array failed"
	case KindAllocationFailure:
		return "allocation failure"
	case KindDuplicateJob:
		return "duplicate job"
	case KindJobNotFound:
		return "job not found"
	default:
		return "unknown"
	}
}

var (
	ErrInsufficientDestination = New(KindInsufficientDestination, "insufficient destination")
	ErrMalformedStream         = New(KindMalformedStream, "malformed stream")
	ErrSuffixArrayFailed       = New(KindSuffixArrayFailed, "suffix array failed")
	ErrAllocationFailure       = New(KindAllocationFailure, "allocation failure")
	ErrDuplicateJob            = New(KindDuplicateJob, "duplicate job")
	ErrJobNotFound             = New(KindJobNotFound, "job not found")
)

// Error is the concrete error type returned across the module. Msg is
// the static, Kind-identifying message; callers needing request-specific
// detail should Wrapf it rather than construct a new *Error.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf reports the Kind of err, or KindUnknown if err is nil or not
// one of ours.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Wrapf wraps err with a formatted message and a stack trace, exactly
// as github.com/pkg/errors.Wrapf does. The returned error's Kind (via
// KindOf) is still that of the innermost *Error in the chain.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
