package errors

import (
	goerrors "errors"
)

// Unwrap is errors.Unwrap from the standard library.
func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

// As is errors.As from the standard library.
func As(err error, target any) bool {
	return goerrors.As(err, target)
}

// Join is errors.Join from the standard library.
func Join(errs ...error) error {
	return goerrors.Join(errs...)
}

