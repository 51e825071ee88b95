package service

import "errors"

// ErrNotFound is returned, wrapped, when a requested entity has no rows.
var ErrNotFound = errors.New("not found")
