package ledger

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteFunc returns the latest price for a symbol.
type QuoteFunc func(symbol string) (float64, error)

// SnapshotRow is one position projected at current market value.
type SnapshotRow struct {
	Symbol          string
	Shares          decimal.Decimal
	PurchasePrice   decimal.Decimal
	Fees            decimal.Decimal
	LastTransaction time.Time
	CurrentValue    decimal.Decimal
}

// PortfolioSnapshot is a read-only valuation of the portfolio.
type PortfolioSnapshot struct {
	Balance        decimal.Decimal
	Rows           []SnapshotRow
	PositionsValue decimal.Decimal
	TotalValue     decimal.Decimal
	TakenAt        time.Time
}

// Snapshot projects every position at its latest quote. A failed quote
// degrades that row's current value to zero instead of aborting; the
// portfolio itself is never mutated.
func (m *Manager) Snapshot(quote QuoteFunc) PortfolioSnapshot {
	state := m.GetState()

	snap := PortfolioSnapshot{
		Balance: state.Balance,
		Rows:    make([]SnapshotRow, 0, len(state.Positions)),
		TakenAt: m.now(),
	}
	for _, pos := range state.Positions {
		row := SnapshotRow{
			Symbol:          pos.Symbol,
			Shares:          pos.Shares,
			PurchasePrice:   pos.PurchasePrice,
			Fees:            pos.Fees,
			LastTransaction: pos.LastTransaction,
		}
		price, err := quote(pos.Symbol)
		if err != nil {
			log.Printf("[WARN] quote %s failed: %v, valuing at 0", pos.Symbol, err)
		} else {
			row.CurrentValue = pos.Shares.Mul(decimal.NewFromFloat(price)).Round(2)
		}
		snap.Rows = append(snap.Rows, row)
		snap.PositionsValue = snap.PositionsValue.Add(row.CurrentValue)
	}
	snap.TotalValue = snap.Balance.Add(snap.PositionsValue)
	return snap
}
