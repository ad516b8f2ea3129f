package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is one holding in the paper-trading portfolio, unique by symbol.
// PurchasePrice is the price of the first buy; repeat buys do not re-average it.
type Position struct {
	Symbol          string
	Shares          decimal.Decimal
	PurchasePrice   decimal.Decimal
	Fees            decimal.Decimal
	LastTransaction time.Time
}

// Portfolio is the paper-trading state: a cash balance plus the open
// positions. Positions with zero shares are removed, never retained.
type Portfolio struct {
	Balance   decimal.Decimal
	Positions []Position
}

// Clone returns a deep copy of the portfolio.
func (p *Portfolio) Clone() Portfolio {
	cp := Portfolio{Balance: p.Balance}
	cp.Positions = make([]Position, len(p.Positions))
	copy(cp.Positions, p.Positions)
	return cp
}

// FindPosition returns the index of the position for symbol, or -1.
func (p *Portfolio) FindPosition(symbol string) int {
	for i := range p.Positions {
		if p.Positions[i].Symbol == symbol {
			return i
		}
	}
	return -1
}
