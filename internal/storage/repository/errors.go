package repository

import "errors"

// Sentinel errors the services translate into API failures.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail indicates a user with this email already exists.
	ErrDuplicateEmail = errors.New("repository: email already exists")
	// ErrActiveSubscriptionExists indicates the user already holds an
	// active subscription (partial unique index violation).
	ErrActiveSubscriptionExists = errors.New("repository: active subscription already exists")
)
