package models

import "errors"

// Failure kinds every operation in the platform resolves to. Handlers
// map these to HTTP statuses; nothing else crosses the API boundary.
var (
	// ErrInvalidStatus rejects a status value outside the enumeration.
	ErrInvalidStatus = errors.New("invalid issue status")

	// ErrUnauthenticated rejects a mutating action with no identity.
	ErrUnauthenticated = errors.New("user not authenticated")

	// ErrDuplicateLike signals the (user, issue) pair already exists.
	// Callers treat it as already-satisfied, never as a user error.
	ErrDuplicateLike = errors.New("issue already liked by user")

	// ErrPersistence wraps any store rejection or timeout.
	ErrPersistence = errors.New("persistence failure")

	// ErrMalformedImport rejects an import payload before any write.
	ErrMalformedImport = errors.New("malformed import payload")

	// ErrEmptyComment rejects a comment with neither text nor image.
	ErrEmptyComment = errors.New("comment needs text or an image")

	// ErrNotFound reports a missing issue or user.
	ErrNotFound = errors.New("not found")
)
