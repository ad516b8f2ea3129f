package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"PaperDesk/internal/ledger"
	"PaperDesk/internal/model"
	"PaperDesk/internal/news"
	"PaperDesk/internal/signal"
)

// FormatSnapshot formats a portfolio valuation into a Telegram message.
func FormatSnapshot(snap ledger.PortfolioSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📦 <b>Portfolio</b> | %s\n\n", snap.TakenAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Cash: $%s\n", snap.Balance.StringFixed(2)))

	if len(snap.Rows) == 0 {
		b.WriteString("No open positions\n")
	} else {
		b.WriteString("\n<b>Positions:</b>\n")
		for _, row := range snap.Rows {
			b.WriteString(fmt.Sprintf("  %s: %s @ $%s → $%s\n",
				row.Symbol, row.Shares.String(),
				row.PurchasePrice.StringFixed(2), row.CurrentValue.StringFixed(2)))
		}
		b.WriteString(fmt.Sprintf("\nPositions value: $%s\n", snap.PositionsValue.StringFixed(2)))
	}
	b.WriteString(fmt.Sprintf("Total value: $%s\n", snap.TotalValue.StringFixed(2)))

	return b.String()
}

// FormatAnalysis formats the latest indicator readings into a Telegram message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", a.Symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", a.Quote.Price))

	periods := make([]int, 0, len(a.EMA))
	for p := range a.EMA {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	for _, p := range periods {
		if pt, ok := a.EMA[p].Last(); ok {
			dev := 0.0
			if pt.Value > 0 {
				dev = (a.Quote.Price - pt.Value) / pt.Value * 100
			}
			b.WriteString(fmt.Sprintf("EMA%d: %.2f (%+.1f%%)\n", p, pt.Value, dev))
		}
	}

	if pt, ok := a.RSI.Last(); ok {
		b.WriteString(fmt.Sprintf("RSI: %.1f\n", pt.Value))
	}
	if macd, ok := a.MACD.Last(); ok {
		if sig, ok := a.MACDSignal.Last(); ok {
			b.WriteString(fmt.Sprintf("MACD: %.3f | signal: %.3f\n", macd.Value, sig.Value))
		} else {
			b.WriteString(fmt.Sprintf("MACD: %.3f\n", macd.Value))
		}
	}
	if pt, ok := a.Sharpe.Last(); ok {
		b.WriteString(fmt.Sprintf("Sharpe: %.2f\n", pt.Value))
	}

	sup, okS := a.Support.Last()
	res, okR := a.Resistance.Last()
	if okS && okR {
		b.WriteString(fmt.Sprintf("Range: %.2f – %.2f\n", sup.Value, res.Value))
	}

	if alerts := signal.Evaluate(a); len(alerts) > 0 {
		b.WriteString("\n⚠️ <b>Alerts:</b>\n")
		for _, alert := range alerts {
			b.WriteString(fmt.Sprintf("  %s\n", alert.Message))
		}
	}

	return b.String()
}

// FormatAlert formats a single alert for immediate delivery.
func FormatAlert(alert signal.Alert) string {
	return fmt.Sprintf("⚠️ <b>%s</b>\n%s\n%s",
		alert.Symbol, alert.Message, alert.At.Format("2006-01-02 15:04"))
}

// FormatFundamentals formats cost-of-capital metrics.
func FormatFundamentals(symbol string, m model.FundamentalMetrics) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏛 <b>%s cost of capital</b>\n\n", symbol))
	b.WriteString(fmt.Sprintf("Tax rate: %.2f%%\n", m.TaxRate*100))
	b.WriteString(fmt.Sprintf("Cost of debt: %.2f%%\n", m.CostOfDebt*100))
	b.WriteString(fmt.Sprintf("Cost of equity: %.2f%%\n", m.CostOfEquity*100))
	b.WriteString(fmt.Sprintf("WACC: %.2f%%\n", m.WACC*100))
	return b.String()
}

// FormatHeadlines formats recent news for a symbol.
func FormatHeadlines(symbol string, headlines []news.Headline) string {
	if len(headlines) == 0 {
		return fmt.Sprintf("No recent news for %s", symbol)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📰 <b>%s news</b>\n\n", symbol))
	for _, h := range headlines {
		if h.PublishedAt.IsZero() {
			b.WriteString(fmt.Sprintf("• %s\n", h.Title))
		} else {
			b.WriteString(fmt.Sprintf("• %s (%s)\n", h.Title, h.PublishedAt.Format("Jan 2")))
		}
	}
	return b.String()
}
