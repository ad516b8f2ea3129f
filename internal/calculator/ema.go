package calculator

import (
	"errors"
	"fmt"

	"PaperDesk/internal/model"
)

// emaValues computes an exponential moving average over raw values with
// alpha = 2/(period+1), seeded at the first value. O(1) per sample.
func emaValues(values []float64, period int) []float64 {
	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(values))
	for i, v := range values {
		if i == 0 {
			out[0] = v
			continue
		}
		out[i] = alpha*v + (1-alpha)*out[i-1]
	}
	return out
}

// EMA computes the exponential moving average of the close prices. The
// recurrence is seeded with the first close, so every point is defined.
func EMA(bars []model.OHLCV, period int) (model.Series, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: EMA needs at least 1 bar", ErrInsufficientData)
	}
	values := emaValues(model.Closes(bars), period)
	series := make(model.Series, len(bars))
	for i, b := range bars {
		series[i] = model.Point{Time: b.Time, Value: values[i], Valid: true}
	}
	return series, nil
}
