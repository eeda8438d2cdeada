package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrStateConflict     = errors.New("entity not in an eligible state")
	ErrRateLimited       = errors.New("too many attempts")
	ErrProviderFailure   = errors.New("payment provider failure")
	ErrUnauthorized      = errors.New("unauthorized")
)
