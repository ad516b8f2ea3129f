package calculator

import (
	"errors"
	"testing"
)

func TestMACD_ConsistentWithConstituentEMAs(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 107, 104, 108, 110, 109, 112, 115, 113}
	bars := barsFromCloses(closes)

	macd, signal, err := MACD(bars, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	if err != nil {
		t.Fatalf("MACD: %v", err)
	}

	fast, err := EMA(bars, MACDFastPeriod)
	if err != nil {
		t.Fatalf("EMA(12): %v", err)
	}
	slow, err := EMA(bars, MACDSlowPeriod)
	if err != nil {
		t.Fatalf("EMA(26): %v", err)
	}
	for i := range bars {
		want := fast[i].Value - slow[i].Value
		if !almostEqual(macd[i].Value, want, 1e-9) {
			t.Errorf("index %d: MACD %g, want EMA12-EMA26 = %g", i, macd[i].Value, want)
		}
	}

	// The signal line is the EMA(9) of the MACD line.
	macdValues := make([]float64, len(macd))
	for i, p := range macd {
		macdValues[i] = p.Value
	}
	wantSignal := emaValues(macdValues, MACDSignalPeriod)
	for i := range bars {
		if !almostEqual(signal[i].Value, wantSignal[i], 1e-9) {
			t.Errorf("index %d: signal %g, want %g", i, signal[i].Value, wantSignal[i])
		}
	}
}

func TestMACD_Errors(t *testing.T) {
	bars := barsFromCloses([]float64{1, 2, 3})
	if _, _, err := MACD(bars, 26, 12, 9); err == nil {
		t.Error("expected error when fast >= slow")
	}
	if _, _, err := MACD(nil, 12, 26, 9); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
