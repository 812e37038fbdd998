package repository

import "errors"

// ErrNotFound indicates the requested user or entry does not exist.
var ErrNotFound = errors.New("not found")
