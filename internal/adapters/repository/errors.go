package repository

import "errors"

// Sentinel errors returned by the event store.
var (
	ErrNoPath        = errors.New("database path is required")
	ErrNotConfigured = errors.New("event store is not configured")
	ErrSessionClosed = errors.New("store session is closed")
)
