// Package apperr classifies failures that callers are expected to
// handle: missing records, bad requests and uniqueness/scheduling
// conflicts. Anything else is a storage fault and passes through
// unwrapped.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindInvalid
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound reports a referenced record that does not exist.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalid reports a request that can never succeed as given.
func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation or a scheduling collision.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsNotFound(err error) bool { return is(err, KindNotFound) }
func IsInvalid(err error) bool  { return is(err, KindInvalid) }
func IsConflict(err error) bool { return is(err, KindConflict) }
