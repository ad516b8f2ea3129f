package calculator

import (
	"errors"
	"fmt"
	"math"

	"PaperDesk/internal/model"
)

// TradingDaysPerYear is the annualization factor for daily bars.
const TradingDaysPerYear = 252

// SharpeRatio computes the rolling annualized Sharpe ratio: rolling mean of
// daily excess returns x 252 over rolling sample standard deviation of the
// daily returns x sqrt(252). riskFreeRate is the annualized decimal rate;
// callers without one must skip the computation entirely rather than pass 0.
//
// The first defined point is at index window (one bar for the first return
// plus a full window of returns). A zero-deviation window yields an
// undefined point rather than a division by zero.
func SharpeRatio(bars []model.OHLCV, riskFreeRate float64, window int) (model.Series, error) {
	if window <= 1 {
		return nil, errors.New("window must be greater than 1")
	}
	if len(bars) < window+1 {
		return nil, fmt.Errorf("%w: Sharpe(%d) needs %d bars, got %d", ErrInsufficientData, window, window+1, len(bars))
	}

	dailyRF := riskFreeRate / TradingDaysPerYear
	series := make(model.Series, len(bars))
	for i, b := range bars {
		series[i] = model.Point{Time: b.Time}
	}

	// Rolling sums of returns and squared returns over the trailing window.
	returns := make([]float64, len(bars))
	var sum, sumSq float64
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			return nil, fmt.Errorf("%w: zero close at bar %d", ErrInsufficientData, i-1)
		}
		r := bars[i].Close/prev - 1
		returns[i] = r
		sum += r
		sumSq += r * r
		if i > window {
			old := returns[i-window]
			sum -= old
			sumSq -= old * old
		}
		if i < window {
			continue
		}

		n := float64(window)
		mean := sum / n
		// Sample variance (n-1 denominator).
		variance := (sumSq - n*mean*mean) / (n - 1)
		if variance < 0 {
			variance = 0
		}
		std := math.Sqrt(variance)
		if std == 0 {
			continue
		}
		annualReturn := (mean - dailyRF) * TradingDaysPerYear
		annualVol := std * math.Sqrt(TradingDaysPerYear)
		series[i] = model.Point{Time: bars[i].Time, Value: annualReturn / annualVol, Valid: true}
	}
	return series, nil
}
