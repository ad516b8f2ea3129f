package collector

import "PaperDesk/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchIntradayBars(symbol, interval string) ([]model.OHLCV, error)
	FetchQuote(symbol string) (model.Quote, error)
	Name() string
}
