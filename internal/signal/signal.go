// Package signal turns a computed analysis into actionable alerts.
package signal

import (
	"fmt"
	"time"

	"PaperDesk/internal/model"
)

// Kind identifies the condition an alert reports.
type Kind string

const (
	KindBullishEngulfing Kind = "bullish_engulfing"
	KindBearishEngulfing Kind = "bearish_engulfing"
	KindAnomaly          Kind = "anomaly"
	KindOverbought       Kind = "overbought"
	KindOversold         Kind = "oversold"
)

// RSI thresholds for overbought/oversold alerts.
const (
	OverboughtRSI = 70.0
	OversoldRSI   = 30.0
)

// Alert is a single condition detected on the latest bar.
type Alert struct {
	Symbol  string
	Kind    Kind
	Value   float64
	Message string
	At      time.Time
}

// Evaluate inspects the most recent bar of the analysis and returns
// every alert condition it satisfies. A nil analysis or one without
// bars yields no alerts.
func Evaluate(a *model.Analysis) []Alert {
	if a == nil || len(a.Bars) == 0 {
		return nil
	}
	last := len(a.Bars) - 1
	at := a.Bars[last].Time
	var alerts []Alert

	if last < len(a.BullishEngulfing) && a.BullishEngulfing[last] {
		alerts = append(alerts, Alert{
			Symbol:  a.Symbol,
			Kind:    KindBullishEngulfing,
			Value:   a.Bars[last].Close,
			Message: fmt.Sprintf("%s printed a bullish engulfing bar at %.2f", a.Symbol, a.Bars[last].Close),
			At:      at,
		})
	}
	if last < len(a.BearishEngulfing) && a.BearishEngulfing[last] {
		alerts = append(alerts, Alert{
			Symbol:  a.Symbol,
			Kind:    KindBearishEngulfing,
			Value:   a.Bars[last].Close,
			Message: fmt.Sprintf("%s printed a bearish engulfing bar at %.2f", a.Symbol, a.Bars[last].Close),
			At:      at,
		})
	}

	if a.Anomalies.Defined && last < len(a.Anomalies.Flags) && a.Anomalies.Flags[last] {
		dist := 0.0
		if p, ok := a.Anomalies.Distances.Last(); ok && p.Valid {
			dist = p.Value
		}
		alerts = append(alerts, Alert{
			Symbol:  a.Symbol,
			Kind:    KindAnomaly,
			Value:   dist,
			Message: fmt.Sprintf("%s return anomaly: distance %.6f above threshold %.6f", a.Symbol, dist, a.Anomalies.Threshold),
			At:      at,
		})
	}

	if last < len(a.RSI) && a.RSI[last].Valid {
		rsi := a.RSI[last].Value
		switch {
		case rsi > OverboughtRSI:
			alerts = append(alerts, Alert{
				Symbol:  a.Symbol,
				Kind:    KindOverbought,
				Value:   rsi,
				Message: fmt.Sprintf("%s RSI %.1f above %.0f, overbought", a.Symbol, rsi, OverboughtRSI),
				At:      at,
			})
		case rsi < OversoldRSI:
			alerts = append(alerts, Alert{
				Symbol:  a.Symbol,
				Kind:    KindOversold,
				Value:   rsi,
				Message: fmt.Sprintf("%s RSI %.1f below %.0f, oversold", a.Symbol, rsi, OversoldRSI),
				At:      at,
			})
		}
	}

	return alerts
}
