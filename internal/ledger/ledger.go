// Package ledger owns the paper-trading portfolio: a cash balance and the
// open positions, mutated only through Buy and Sell and persisted to a flat
// CSV file after every committed transaction. The persisted file is the
// source of truth across sessions.
package ledger

import (
	"errors"
	"log"
	"sync"
	"time"

	"PaperDesk/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("ledger: quantity must be positive")
	ErrInvalidPrice       = errors.New("ledger: price must be positive")
	ErrInsufficientFunds  = errors.New("ledger: insufficient funds")
	ErrInsufficientShares = errors.New("ledger: insufficient shares")
)

// DefaultOpeningBalance is the virtual cash granted when no prior state exists.
const DefaultOpeningBalance = 100000

// feeRate is the flat 0.2% transaction fee applied to both sides.
var feeRate = decimal.NewFromFloat(0.002)

// Transaction is the committed result of a Buy or Sell.
type Transaction struct {
	ID           string
	Symbol       string
	Side         string // "BUY" or "SELL"
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	Fee          decimal.Decimal
	BalanceAfter decimal.Decimal
	At           time.Time
}

// Manager owns one Portfolio for the session. All mutations are serialized
// by the mutex and persisted synchronously before the call returns.
type Manager struct {
	mu       sync.Mutex
	state    *model.Portfolio
	filePath string
	now      func() time.Time
}

// NewManager loads the portfolio from filePath, or initializes a fresh one
// with openingBalance when no usable state exists. A missing or malformed
// file is recovered by resetting to defaults, never by failing the session.
func NewManager(filePath string, openingBalance float64) *Manager {
	if openingBalance <= 0 {
		openingBalance = DefaultOpeningBalance
	}
	state := Load(filePath, decimal.NewFromFloat(openingBalance))
	return &Manager{
		state:    state,
		filePath: filePath,
		now:      time.Now,
	}
}

// GetState returns a copy of the current portfolio.
func (m *Manager) GetState() model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Buy purchases quantity shares of symbol at price. The total cost includes
// the 0.2% fee; when it exceeds the balance the portfolio is left untouched.
// A repeat buy on an existing position increments shares and fees but keeps
// the original purchase price (current behavior, not a weighted average).
func (m *Manager) Buy(symbol string, quantity, price decimal.Decimal) (Transaction, error) {
	if !quantity.IsPositive() {
		return Transaction{}, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return Transaction{}, ErrInvalidPrice
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cost := quantity.Mul(price)
	fee := cost.Mul(feeRate)
	totalCost := cost.Add(fee)
	if totalCost.GreaterThan(m.state.Balance) {
		return Transaction{}, ErrInsufficientFunds
	}

	now := m.now()
	m.state.Balance = m.state.Balance.Sub(totalCost)
	if i := m.state.FindPosition(symbol); i >= 0 {
		pos := &m.state.Positions[i]
		pos.Shares = pos.Shares.Add(quantity)
		pos.Fees = pos.Fees.Add(fee)
		pos.LastTransaction = now
	} else {
		m.state.Positions = append(m.state.Positions, model.Position{
			Symbol:          symbol,
			Shares:          quantity,
			PurchasePrice:   price,
			Fees:            fee,
			LastTransaction: now,
		})
	}
	m.persist()

	return Transaction{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Side:         "BUY",
		Quantity:     quantity,
		Price:        price,
		Fee:          fee,
		BalanceAfter: m.state.Balance,
		At:           now,
	}, nil
}

// Sell disposes quantity shares of symbol at price, crediting the proceeds
// net of the 0.2% fee. Selling more shares than held (or an unknown symbol)
// fails without mutation; a position sold down to zero shares is removed.
func (m *Manager) Sell(symbol string, quantity, price decimal.Decimal) (Transaction, error) {
	if !quantity.IsPositive() {
		return Transaction{}, ErrInvalidQuantity
	}
	if !price.IsPositive() {
		return Transaction{}, ErrInvalidPrice
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.FindPosition(symbol)
	if i < 0 || m.state.Positions[i].Shares.LessThan(quantity) {
		return Transaction{}, ErrInsufficientShares
	}

	proceeds := quantity.Mul(price)
	fee := proceeds.Mul(feeRate)
	netProceeds := proceeds.Sub(fee)

	now := m.now()
	m.state.Balance = m.state.Balance.Add(netProceeds)
	pos := &m.state.Positions[i]
	pos.Shares = pos.Shares.Sub(quantity)
	pos.Fees = pos.Fees.Add(fee)
	pos.LastTransaction = now
	if pos.Shares.IsZero() {
		m.state.Positions = append(m.state.Positions[:i], m.state.Positions[i+1:]...)
	}
	m.persist()

	return Transaction{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Side:         "SELL",
		Quantity:     quantity,
		Price:        price,
		Fee:          fee,
		BalanceAfter: m.state.Balance,
		At:           now,
	}, nil
}

func (m *Manager) persist() {
	if err := Save(m.filePath, m.state); err != nil {
		log.Printf("[ERROR] failed to save portfolio: %v", err)
	}
}
