package common

import (
	"github.com/pkg/errors"
)

// Kind classifies a rejected operation so integrating systems can branch on cause.
type Kind int

const (
	Internal Kind = iota
	NotFound
	StateConflict
	Window
	Authorization
	Validation
	Resource
	RateLimit
	Paused
	ExternalDependency
)

var kindNames = map[Kind]string{
	Internal:           "internal",
	NotFound:           "not-found",
	StateConflict:      "state-conflict",
	Window:             "window-violation",
	Authorization:      "authorization",
	Validation:         "validation",
	Resource:           "resource",
	RateLimit:          "rate-limit",
	Paused:             "paused",
	ExternalDependency: "external-dependency",
}

func (k Kind) String() string {
	if s, f := kindNames[k]; f {
		return s
	}
	return "unknown"
}

// KindError is a sentinel error tagged with its kind. Sentinels are compared by identity,
// so wrapping with errors.Wrap keeps errors.Is working.
type KindError struct {
	kind Kind
	msg  string
}

func NewError(kind Kind, msg string) *KindError {
	return &KindError{kind: kind, msg: msg}
}

func (e *KindError) Error() string {
	return e.msg
}

func (e *KindError) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of the first KindError in the chain, Internal otherwise.
func KindOf(err error) Kind {
	if err == nil {
		return Internal
	}
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return Internal
}

// Retryable reports whether the same call may succeed later without changing its inputs.
func Retryable(kind Kind) bool {
	switch kind {
	case RateLimit, Window, Paused:
		return true
	}
	return false
}
