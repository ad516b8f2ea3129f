package model

import (
	"errors"
	"fmt"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote holds the latest traded data for a symbol.
type Quote struct {
	Symbol string
	Name   string
	Price  float64
	Open   float64
	High   float64
	Low    float64
	Volume float64
	At     time.Time
}

// ValidateBars checks the bar-series invariants: strictly increasing
// timestamps, high >= max(open, close), min(open, close) >= low >= 0,
// and non-negative volume.
func ValidateBars(bars []OHLCV) error {
	if len(bars) == 0 {
		return errors.New("empty bar series")
	}
	for i, b := range bars {
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bar %d: timestamp %s not after %s", i, b.Time, bars[i-1].Time)
		}
		hi, lo := b.Open, b.Open
		if b.Close > hi {
			hi = b.Close
		}
		if b.Close < lo {
			lo = b.Close
		}
		if b.High < hi || b.Low > lo || b.Low < 0 {
			return fmt.Errorf("bar %d: OHLC envelope violated (o=%g h=%g l=%g c=%g)", i, b.Open, b.High, b.Low, b.Close)
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d: negative volume %g", i, b.Volume)
		}
	}
	return nil
}

// Closes extracts the close column from a bar series.
func Closes(bars []OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
