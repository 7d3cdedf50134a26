package store

import "errors"

// ErrLocked is returned when another process holds the database file.
var ErrLocked = errors.New("database is locked: is jam already running? Only one instance can be active at a time")

// ErrUnknownDriver indicates an unsupported storage.driver value.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")
