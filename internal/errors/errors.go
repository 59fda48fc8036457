// Package errors is the error toolkit shared by every burgerhub layer: stdlib
// matching, pkg/errors stack annotation and a retryable marker that tells
// event consumers to redeliver.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func New(text string) error {
	return pkgerrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// WithStack records the caller's stack on err. A nil err stays nil.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

type retryable struct {
	err error
}

func (r *retryable) Error() string { return "retryable: " + r.err.Error() }

func (r *retryable) Unwrap() error { return r.err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}

	return &retryable{err: err}
}

// IsRetryable reports whether any error in err's chain was marked Retryable.
func IsRetryable(err error) bool {
	var r *retryable

	return stderrors.As(err, &r)
}
