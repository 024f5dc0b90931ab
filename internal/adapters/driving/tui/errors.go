package tui

import "errors"

// ErrMissingRunFunc is returned when no generation function is provided.
var ErrMissingRunFunc = errors.New("tui: run function is required")

// ErrMissingRecord is returned when there is no kit to display.
var ErrMissingRecord = errors.New("tui: kit record is required")
