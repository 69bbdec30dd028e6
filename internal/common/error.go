package common

import "errors"

// Error categories. Callers match them with errors.Is; details are attached
// with fmt.Errorf("%w: ...").
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Malformed or policy-violating input.
	ErrorValidation = errors.New("validation error")

	// Missing/invalid/expired credentials, or a subject that no longer exists.
	ErrorUnauthorized = errors.New("unauthorized")

	// Authenticated, but the role or entitlement forbids the action.
	ErrorForbidden = errors.New("forbidden")

	// External provider failed on a path with no fallback.
	ErrorUpstream = errors.New("upstream error")

	// Internal invariant violation (corrupt stored hash, bad signing setup).
	ErrorConfiguration = errors.New("configuration error")

	ErrorInternal = errors.New("internal error")

	// Token errors. Both are reported together with ErrorUnauthorized.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Login rejection; never says which half of the pair was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
