// Package apperr carries the error taxonomy shared by every feature:
// validation, not-found, forbidden, and store-unavailable. Handlers map
// these to HTTP status codes in one place (httpx.Wrap).
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnavailable
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

func Validation(msg string) error { return &Error{kind: KindValidation, msg: msg} }
func NotFound(msg string) error   { return &Error{kind: KindNotFound, msg: msg} }
func Forbidden(msg string) error  { return &Error{kind: KindForbidden, msg: msg} }

func Unavailable(msg string, err error) error {
	return &Error{kind: KindUnavailable, msg: msg, err: err}
}

// KindOf reports the taxonomy kind of err, or KindUnknown for errors
// from outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsForbidden(err error) bool  { return KindOf(err) == KindForbidden }
