package config

import "errors"

// ErrInvalid is returned for settings jam cannot run with.
var ErrInvalid = errors.New("invalid config")
