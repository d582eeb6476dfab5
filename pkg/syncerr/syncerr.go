// pkg/syncerr/syncerr.go

package syncerr

import (
	cerr "github.com/cockroachdb/errors"
)

// ExpectedError marks failures caused by operator input (bad flag values,
// malformed binding keys) rather than by fabricsync or the store. The CLI
// logs these as warnings, not errors.
type ExpectedError struct {
	cause error
}

func (e *ExpectedError) Error() string { return e.cause.Error() }
func (e *ExpectedError) Unwrap() error { return e.cause }

// NewExpectedError wraps err as operator-facing.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &ExpectedError{cause: err}
}

// Expectedf builds an operator-facing error from a format string.
func Expectedf(format string, args ...any) error {
	return &ExpectedError{cause: cerr.Newf(format, args...)}
}

// IsExpectedUserError reports whether err (anywhere in its chain) was
// marked operator-facing.
func IsExpectedUserError(err error) bool {
	var expected *ExpectedError
	return cerr.As(err, &expected)
}

// WrapStore annotates a store/connectivity failure without masking it;
// errors.Is/As still see the cause.
func WrapStore(err error, op string) error {
	if err == nil {
		return nil
	}
	return cerr.Wrapf(err, "network store: %s", op)
}

// WithHint attaches an operator hint in cockroachdb/errors style.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(cerr.WithStack(err), hint)
}
