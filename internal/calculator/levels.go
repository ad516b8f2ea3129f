package calculator

import (
	"errors"
	"fmt"

	"PaperDesk/internal/model"
)

// SupportResistance computes rolling support (min of lows) and resistance
// (max of highs) over the trailing window. The first defined point is at
// index window-1, the first bar with a full window behind it.
func SupportResistance(bars []model.OHLCV, window int) (support, resistance model.Series, err error) {
	if window <= 0 {
		return nil, nil, errors.New("window must be positive")
	}
	if len(bars) < window {
		return nil, nil, fmt.Errorf("%w: support/resistance(%d) needs %d bars, got %d", ErrInsufficientData, window, window, len(bars))
	}

	lows := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
		highs[i] = b.High
	}
	minVals := rollingExtreme(lows, window, func(a, b float64) bool { return a <= b })
	maxVals := rollingExtreme(highs, window, func(a, b float64) bool { return a >= b })

	support = make(model.Series, len(bars))
	resistance = make(model.Series, len(bars))
	for i, b := range bars {
		valid := i >= window-1
		support[i] = model.Point{Time: b.Time, Value: minVals[i], Valid: valid}
		resistance[i] = model.Point{Time: b.Time, Value: maxVals[i], Valid: valid}
	}
	return support, resistance, nil
}

// rollingExtreme computes a sliding-window extreme using a monotonic index
// deque: O(1) amortized per sample, O(window) space. wins reports whether
// its first argument beats (or ties) the second.
func rollingExtreme(values []float64, window int, wins func(a, b float64) bool) []float64 {
	out := make([]float64, len(values))
	deque := make([]int, 0, window)
	for i, v := range values {
		// Drop indexes that fell out of the window.
		if len(deque) > 0 && deque[0] <= i-window {
			deque = deque[1:]
		}
		// Drop values that can never be the extreme again.
		for len(deque) > 0 && wins(v, values[deque[len(deque)-1]]) {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		out[i] = values[deque[0]]
	}
	return out
}
