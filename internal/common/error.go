package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrorReadOnly = errors.New("read-only transaction")

	// The ledger has no global state yet; Bootstrap was never run.
	ErrorNotBootstrapped = errors.New("ledger not bootstrapped")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
