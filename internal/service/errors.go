package service

import "errors"

// Every operation either succeeds or is rejected with one of these; stock
// clamping is the only partial application and is reported as a warning on
// the result, not as an error.
var (
	ErrUnavailable          = errors.New("product unavailable")
	ErrRateLimited          = errors.New("too many attempts")
	ErrInvalidInput         = errors.New("invalid input")
	ErrWeakPassword         = errors.New("password does not meet requirements")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrEmptyCart            = errors.New("no items in cart")
	ErrNotFound             = errors.New("not found")
)
