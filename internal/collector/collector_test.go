package collector

import (
	"fmt"
	"testing"
	"time"

	"PaperDesk/internal/model"
)

func TestAnalyze_ComputesFullIndicatorSet(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100})
	a, err := c.Analyze("GOOGL", 300)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Symbol != "GOOGL" {
		t.Errorf("symbol: got %q", a.Symbol)
	}
	if len(a.Bars) != 300 {
		t.Errorf("bars: got %d, want 300", len(a.Bars))
	}
	for _, period := range []int{20, 50, 200} {
		series, ok := a.EMA[period]
		if !ok || len(series) != len(a.Bars) {
			t.Errorf("EMA%d missing or wrong length", period)
		}
	}
	if len(a.RSI) != len(a.Bars) {
		t.Errorf("RSI: got %d points, want %d", len(a.RSI), len(a.Bars))
	}
	if len(a.MACD) != len(a.Bars) || len(a.MACDSignal) != len(a.Bars) {
		t.Error("MACD series missing or wrong length")
	}
	if len(a.Support) != len(a.Bars) || len(a.Resistance) != len(a.Bars) {
		t.Error("support/resistance series missing or wrong length")
	}
	if !a.Anomalies.Defined {
		t.Error("anomaly scan should be defined for 300 bars")
	}
	if len(a.BullishEngulfing) != len(a.Bars) || len(a.BearishEngulfing) != len(a.Bars) {
		t.Error("engulfing flags missing or wrong length")
	}
	if a.Quote.Price != 100 {
		t.Errorf("quote price: got %v, want 100", a.Quote.Price)
	}
}

func TestAnalyze_SharpeOnlyWithRiskFreeRate(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100})
	a, err := c.Analyze("GOOGL", 300)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Sharpe != nil {
		t.Error("Sharpe should be absent without a risk-free rate")
	}

	rf := 0.03
	c.RiskFreeRate = &rf
	a, err = c.Analyze("GOOGL", 300)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(a.Sharpe) != len(a.Bars) {
		t.Errorf("Sharpe: got %d points, want %d", len(a.Sharpe), len(a.Bars))
	}
}

func TestAnalyze_QuoteFailureFallsBackToLastClose(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100, QuoteErr: fmt.Errorf("boom")})
	a, err := c.Analyze("GOOGL", 60)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	last := a.Bars[len(a.Bars)-1]
	if a.Quote.Price != last.Close {
		t.Errorf("fallback quote: got %v, want last close %v", a.Quote.Price, last.Close)
	}
}

func TestAnalyze_RejectsUnorderedBars(t *testing.T) {
	now := time.Now()
	bars := []model.OHLCV{
		{Time: now, Open: 10, High: 11, Low: 9, Close: 10, Volume: 1},
		{Time: now.Add(-time.Hour), Open: 10, High: 11, Low: 9, Close: 10, Volume: 1},
	}
	c := NewCollector(&MockFetcher{Price: 100, DailyData: bars})
	if _, err := c.Analyze("GOOGL", 2); err == nil {
		t.Error("expected validation error for unordered bars")
	}
}

func TestMarketReturn(t *testing.T) {
	bars := []model.OHLCV{
		barOn(2021, 3, 100),
		barOn(2021, 12, 110), // 2021 close: 110
		barOn(2022, 6, 100),
		barOn(2022, 12, 121), // 2022: +10%
		barOn(2023, 12, 145.2), // 2023: +20%
	}
	c := NewCollector(&MockFetcher{DailyData: bars})
	got, err := c.MarketReturn("^GSPC", 3)
	if err != nil {
		t.Fatalf("MarketReturn: %v", err)
	}
	want := 0.15
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("market return: got %v, want %v", got, want)
	}
}

func TestMarketReturn_SingleYearFails(t *testing.T) {
	bars := []model.OHLCV{barOn(2023, 1, 100), barOn(2023, 12, 120)}
	c := NewCollector(&MockFetcher{DailyData: bars})
	if _, err := c.MarketReturn("^GSPC", 2); err == nil {
		t.Error("expected error with a single yearly close")
	}
}

func barOn(year int, month time.Month, close float64) model.OHLCV {
	return model.OHLCV{
		Time:   time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		Open:   close,
		High:   close * 1.01,
		Low:    close * 0.99,
		Close:  close,
		Volume: 1000,
	}
}
