package database

import "errors"

// ErrNotReady is returned when a pool is used before Connect succeeds
// or after Close.
var ErrNotReady = errors.New("database not ready")
