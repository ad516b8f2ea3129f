package calculator

import (
	"errors"
	"fmt"

	"PaperDesk/internal/model"
)

// RSI computes the Relative Strength Index over a simple rolling mean of
// gains and losses (not Wilder smoothing). The first defined point is at
// index window, once a full window of close-to-close deltas exists.
//
// Division-by-zero policy: avgLoss == 0 with avgGain > 0 yields 100;
// a fully flat window (both averages zero) yields 50.
func RSI(bars []model.OHLCV, window int) (model.Series, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(bars) < window+1 {
		return nil, fmt.Errorf("%w: RSI(%d) needs %d bars, got %d", ErrInsufficientData, window, window+1, len(bars))
	}

	series := make(model.Series, len(bars))
	for i, b := range bars {
		series[i] = model.Point{Time: b.Time}
	}

	// Rolling sums over the trailing `window` deltas, O(1) per bar.
	var sumGain, sumLoss float64
	gains := make([]float64, len(bars))
	losses := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		delta := bars[i].Close - bars[i-1].Close
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
		sumGain += gains[i]
		sumLoss += losses[i]
		if i > window {
			sumGain -= gains[i-window]
			sumLoss -= losses[i-window]
		}
		if i < window {
			continue
		}

		avgGain := sumGain / float64(window)
		avgLoss := sumLoss / float64(window)
		var rsi float64
		switch {
		case avgLoss == 0 && avgGain == 0:
			rsi = 50
		case avgLoss == 0:
			rsi = 100
		default:
			rs := avgGain / avgLoss
			rsi = 100 - 100/(1+rs)
		}
		series[i] = model.Point{Time: bars[i].Time, Value: rsi, Valid: true}
	}
	return series, nil
}
