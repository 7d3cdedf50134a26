package tracker

import "errors"

// ErrUserCancelled is returned when the user dismisses a prompt. Callers
// abort silently.
var ErrUserCancelled = errors.New("cancelled")

// ErrStopPending is returned while a stopped session still waits for its
// description.
var ErrStopPending = errors.New("a stopped session is waiting for its description")

// ErrNothingPending is returned by Commit when no session was finalized.
var ErrNothingPending = errors.New("no stopped session to record")
