// Package errs defines the error taxonomy shared by the core and the HTTP
// boundary. Every failing core operation returns a kinded error so the
// boundary can map it to a status code without string matching.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// KindUnknown is an unclassified error.
	KindUnknown Kind = iota

	// KindNotFound means a channel or video could not be resolved or
	// located upstream.
	KindNotFound

	// KindUpstream means a platform API call failed (non-2xx, malformed
	// payload).
	KindUpstream

	// KindQuotaExceeded means a call would push the quota tracker over
	// its configured unit budget.
	KindQuotaExceeded

	// KindProvider means an LLM provider call failed or returned empty
	// content.
	KindProvider

	// KindConfig means a required credential or setting is absent.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindProvider:
		return "provider"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a kinded error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFoundf returns a KindNotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// Upstreamf wraps err as a KindUpstream error.
func Upstreamf(err error, format string, args ...interface{}) *Error {
	return Wrap(KindUpstream, err, format, args...)
}

// QuotaExceededf returns a KindQuotaExceeded error.
func QuotaExceededf(format string, args ...interface{}) *Error {
	return New(KindQuotaExceeded, format, args...)
}

// Providerf returns a KindProvider error, wrapping err when non-nil.
func Providerf(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindProvider, Message: fmt.Sprintf(format, args...), Err: err}
}

// Configf returns a KindConfig error.
func Configf(format string, args ...interface{}) *Error {
	return New(KindConfig, format, args...)
}

// KindOf extracts the kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
