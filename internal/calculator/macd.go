package calculator

import (
	"errors"
	"fmt"

	"PaperDesk/internal/model"
)

// Default MACD periods.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD computes the Moving Average Convergence Divergence line
// (EMA(fast) - EMA(slow)) and its signal line (EMA of the MACD line).
// All EMAs are seeded at the first sample, so every point is defined.
func MACD(bars []model.OHLCV, fast, slow, signal int) (macd, signalLine model.Series, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, nil, fmt.Errorf("fast period %d must be shorter than slow period %d", fast, slow)
	}
	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("%w: MACD needs at least 1 bar", ErrInsufficientData)
	}

	closes := model.Closes(bars)
	fastEMA := emaValues(closes, fast)
	slowEMA := emaValues(closes, slow)

	macdValues := make([]float64, len(bars))
	for i := range bars {
		macdValues[i] = fastEMA[i] - slowEMA[i]
	}
	signalValues := emaValues(macdValues, signal)

	macd = make(model.Series, len(bars))
	signalLine = make(model.Series, len(bars))
	for i, b := range bars {
		macd[i] = model.Point{Time: b.Time, Value: macdValues[i], Valid: true}
		signalLine[i] = model.Point{Time: b.Time, Value: signalValues[i], Valid: true}
	}
	return macd, signalLine, nil
}
