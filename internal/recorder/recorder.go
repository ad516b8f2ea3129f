package recorder

// TradeEvent records an executed paper trade.
type TradeEvent struct {
	ID           string
	Symbol       string
	Side         string // "BUY" or "SELL"
	Quantity     float64
	Price        float64
	Fee          float64
	BalanceAfter float64
}

// ValuationEvent records a periodic portfolio valuation.
type ValuationEvent struct {
	Cash           float64
	PositionsValue float64
	Total          float64
}

// SignalEvent records an alert raised by the analysis scan.
type SignalEvent struct {
	Symbol    string
	EventType string // signal kind, e.g. "bullish_engulfing"
	Value     float64
	Note      string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordTrade(evt *TradeEvent) error
	RecordValuation(evt *ValuationEvent) error
	RecordSignal(evt *SignalEvent) error
	Close() error
}
