// Package errors defines typed storefront application errors.
package errors

import (
	stderrors "errors"
	"strings"
)

// Kind classifies application failures for consistent handling.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindRejected     Kind = "rejected"
	KindConflict     Kind = "conflict"
)

// Error is a typed application failure. Message carries the user-facing
// text: verbatim backend messages for rejections, the generic connect
// message for transport failures.
type Error struct {
	Kind    Kind
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: strings.TrimSpace(message)}
}

// KindOf returns the kind recorded on err, or KindUnknown when err carries
// no typed application error.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// IsUnavailable reports whether err represents a transport-level failure.
func IsUnavailable(err error) bool {
	return KindOf(err) == KindUnavailable
}
