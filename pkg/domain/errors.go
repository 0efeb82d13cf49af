package domain

import "errors"

// ErrSessionNotFound is returned when an identity has no session in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrComplaintNotFound is returned when a complaint ID does not exist.
var ErrComplaintNotFound = errors.New("complaint not found")
