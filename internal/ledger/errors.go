package ledger

import "errors"

// ErrStorageUnavailable wraps any failure to read or write the backing store.
// The ledger keeps working in memory after it is returned.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrInvalidNumericInput is returned when an hours value is not a finite,
// non-negative number.
var ErrInvalidNumericInput = errors.New("invalid hour input: please enter a number")

// ErrNegativeDuration rejects entries that would break duration >= 0.
var ErrNegativeDuration = errors.New("duration must not be negative")

// ErrNotLoaded is returned when the ledger is used before Load.
var ErrNotLoaded = errors.New("ledger not loaded")

// ErrAlreadyLoaded is returned when Load is called a second time.
var ErrAlreadyLoaded = errors.New("ledger already loaded")
