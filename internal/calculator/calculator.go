// Package calculator provides pure technical and fundamental indicator
// calculations over candlestick bars.
//
// Every function is deterministic, performs no I/O, and returns a series
// aligned 1:1 with its input; points inside the lookback window are marked
// invalid rather than zero-filled.
package calculator

import "errors"

var (
	// ErrInsufficientData is returned when the bar series is empty or
	// shorter than the requested window.
	ErrInsufficientData = errors.New("calculator: insufficient data")

	// ErrMissingInput is returned when a required fundamental figure
	// (e.g. beta) is absent. Fatal to the computation, never defaulted.
	ErrMissingInput = errors.New("calculator: missing required input")
)
