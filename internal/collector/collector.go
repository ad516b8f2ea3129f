package collector

import (
	"fmt"
	"log"
	"time"

	"PaperDesk/internal/calculator"
	"PaperDesk/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	DailyData    []model.OHLCV
	IntradayData []model.OHLCV
	QuoteErr     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchIntradayBars(_ string, _ string) ([]model.OHLCV, error) {
	if m.IntradayData != nil {
		return m.IntradayData, nil
	}
	return generateMockBars(m.Price, 120), nil
}

func (m *MockFetcher) FetchQuote(symbol string) (model.Quote, error) {
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	return model.Quote{Symbol: symbol, Price: m.Price, At: time.Now()}, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher      Fetcher
	EMAPeriods   []int
	RSIWindow    int
	SRWindow     int
	SharpeWindow int
	// RiskFreeRate gates the Sharpe series: nil leaves it out entirely.
	RiskFreeRate *float64
}

// NewCollector creates a Collector with the standard indicator settings.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		EMAPeriods:   []int{20, 50, 200},
		RSIWindow:    14,
		SRWindow:     20,
		SharpeWindow: calculator.TradingDaysPerYear,
	}
}

// Analyze fetches daily history for the symbol and computes the full
// indicator set over it.
func (c *Collector) Analyze(symbol string, days int) (*model.Analysis, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	return c.analyze(symbol, bars)
}

// Scan computes the indicator set over intraday bars at the given
// interval (1m, 5m, 15m, 30m or 60m).
func (c *Collector) Scan(symbol, interval string) (*model.Analysis, error) {
	bars, err := c.Fetcher.FetchIntradayBars(symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("fetch intraday bars: %w", err)
	}
	return c.analyze(symbol, bars)
}

func (c *Collector) analyze(symbol string, bars []model.OHLCV) (*model.Analysis, error) {
	if err := model.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("validate bars: %w", err)
	}

	a := &model.Analysis{
		Symbol: symbol,
		Bars:   bars,
		EMA:    make(map[int]model.Series, len(c.EMAPeriods)),
	}

	if quote, err := c.Fetcher.FetchQuote(symbol); err != nil {
		log.Printf("[WARN] quote fetch failed for %s: %v, using last close", symbol, err)
		last := bars[len(bars)-1]
		a.Quote = model.Quote{Symbol: symbol, Price: last.Close, Open: last.Open,
			High: last.High, Low: last.Low, Volume: last.Volume, At: last.Time}
	} else {
		a.Quote = quote
	}

	for _, period := range c.EMAPeriods {
		series, err := calculator.EMA(bars, period)
		if err != nil {
			log.Printf("[WARN] EMA%d calculation failed for %s: %v", period, symbol, err)
			continue
		}
		a.EMA[period] = series
	}

	if rsi, err := calculator.RSI(bars, c.RSIWindow); err != nil {
		log.Printf("[WARN] RSI calculation failed for %s: %v", symbol, err)
	} else {
		a.RSI = rsi
	}

	macd, signal, err := calculator.MACD(bars,
		calculator.MACDFastPeriod, calculator.MACDSlowPeriod, calculator.MACDSignalPeriod)
	if err != nil {
		log.Printf("[WARN] MACD calculation failed for %s: %v", symbol, err)
	} else {
		a.MACD = macd
		a.MACDSignal = signal
	}

	if c.RiskFreeRate != nil {
		if sharpe, err := calculator.SharpeRatio(bars, *c.RiskFreeRate, c.SharpeWindow); err != nil {
			log.Printf("[WARN] Sharpe calculation failed for %s: %v", symbol, err)
		} else {
			a.Sharpe = sharpe
		}
	}

	support, resistance, err := calculator.SupportResistance(bars, c.SRWindow)
	if err != nil {
		log.Printf("[WARN] support/resistance calculation failed for %s: %v", symbol, err)
	} else {
		a.Support = support
		a.Resistance = resistance
	}

	a.Anomalies = calculator.LorentzianAnomalies(bars)
	a.BullishEngulfing, a.BearishEngulfing = calculator.DetectEngulfing(bars)

	return a, nil
}

// MarketReturn estimates the mean annual return of a benchmark symbol
// from its year-end closes over the past years.
func (c *Collector) MarketReturn(symbol string, years int) (float64, error) {
	if years < 2 {
		return 0, fmt.Errorf("market return: need at least 2 years, got %d", years)
	}
	bars, err := c.Fetcher.FetchDailyBars(symbol, years*365)
	if err != nil {
		return 0, fmt.Errorf("fetch benchmark bars: %w", err)
	}
	closes := yearEndCloses(bars)
	if len(closes) < 2 {
		return 0, fmt.Errorf("market return: only %d yearly closes", len(closes))
	}

	var sum float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			return 0, fmt.Errorf("market return: zero close in year series")
		}
		sum += closes[i]/closes[i-1] - 1
	}
	return sum / float64(len(closes)-1), nil
}

// yearEndCloses picks the last close of each calendar year, in order.
func yearEndCloses(bars []model.OHLCV) []float64 {
	var closes []float64
	lastYear := 0
	for _, bar := range bars {
		year := bar.Time.Year()
		if year != lastYear {
			closes = append(closes, bar.Close)
			lastYear = year
		} else {
			closes[len(closes)-1] = bar.Close
		}
	}
	return closes
}
