package calculator

import (
	"math"
	"time"

	"PaperDesk/internal/model"
)

// barsFromCloses builds a synthetic daily bar series where each bar's OHLC
// envelope brackets the given close.
func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
