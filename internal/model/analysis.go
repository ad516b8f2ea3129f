package model

// AnomalyScan holds the result of Lorentzian-distance anomaly detection.
// Distances and Flags are aligned 1:1 with the input bars; the first two
// bars carry no distance. Defined is false when the series produced fewer
// than two returns, in which case no threshold exists.
type AnomalyScan struct {
	Distances Series
	Threshold float64
	Defined   bool
	Flags     []bool
}

// Analysis bundles all computed indicators for one symbol. Series left nil
// were skipped (insufficient data, or no risk-free rate for Sharpe).
type Analysis struct {
	Symbol string
	Quote  Quote
	Bars   []OHLCV

	EMA        map[int]Series
	RSI        Series
	MACD       Series
	MACDSignal Series
	Sharpe     Series

	Support    Series
	Resistance Series

	Anomalies        AnomalyScan
	BullishEngulfing []bool
	BearishEngulfing []bool
}

// FundamentalInputs are the raw figures for WACC/CAPM valuation. Beta is a
// pointer because a missing beta is fatal to the computation rather than
// defaulted.
type FundamentalInputs struct {
	MarketCap       float64
	TotalDebt       float64
	InterestExpense float64
	TaxProvision    float64
	PretaxIncome    float64
	Beta            *float64
	RiskFreeRate    float64
	MarketReturn    float64
}

// FundamentalMetrics holds the derived valuation figures.
type FundamentalMetrics struct {
	TaxRate      float64
	CostOfDebt   float64
	CostOfEquity float64
	WACC         float64
}
