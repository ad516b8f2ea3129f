package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"PaperDesk/internal/model"

	"github.com/shopspring/decimal"
)

// One row per position, with the cash balance carried on the first row only.
var csvHeader = []string{"Symbol", "Shares", "Purchase Price", "Transaction Fee", "Transaction Date", "Balance"}

const txDateFormat = "2006-01-02 15:04:05"

// Load reads the persisted portfolio from filePath. A missing or malformed
// file falls back to a fresh portfolio with the given opening balance.
func Load(filePath string, openingBalance decimal.Decimal) *model.Portfolio {
	fresh := func() *model.Portfolio {
		return &model.Portfolio{Balance: openingBalance}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read portfolio file: %v, starting fresh", err)
		}
		return fresh()
	}

	p, err := parsePortfolio(data)
	if err != nil {
		log.Printf("[WARN] malformed portfolio file %s: %v, starting fresh", filePath, err)
		return fresh()
	}
	return p
}

// Save writes the full portfolio to filePath, creating parent directories
// as needed. Called synchronously after every committed transaction.
func Save(filePath string, p *model.Portfolio) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	if len(p.Positions) == 0 {
		if err := w.Write([]string{"", "", "", "", "", p.Balance.String()}); err != nil {
			return err
		}
	}
	for i, pos := range p.Positions {
		balance := ""
		if i == 0 {
			balance = p.Balance.String()
		}
		record := []string{
			pos.Symbol,
			pos.Shares.String(),
			pos.PurchasePrice.String(),
			pos.Fees.String(),
			pos.LastTransaction.Format(txDateFormat),
			balance,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(filePath, buf.Bytes(), 0644)
}

func parsePortfolio(data []byte) (*model.Portfolio, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("expected a header and at least one row, got %d rows", len(records))
	}
	header := records[0]
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(header))
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i, col, header[i])
		}
	}

	p := &model.Portfolio{}
	haveBalance := false
	for _, rec := range records[1:] {
		if !haveBalance && rec[5] != "" {
			balance, err := decimal.NewFromString(rec[5])
			if err != nil {
				return nil, fmt.Errorf("balance: %w", err)
			}
			p.Balance = balance
			haveBalance = true
		}
		if rec[0] == "" {
			continue // balance-only row
		}

		shares, err := decimal.NewFromString(rec[1])
		if err != nil {
			return nil, fmt.Errorf("shares for %s: %w", rec[0], err)
		}
		price, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("purchase price for %s: %w", rec[0], err)
		}
		fees, err := decimal.NewFromString(rec[3])
		if err != nil {
			return nil, fmt.Errorf("fees for %s: %w", rec[0], err)
		}
		txDate, err := time.ParseInLocation(txDateFormat, rec[4], time.Local)
		if err != nil {
			return nil, fmt.Errorf("transaction date for %s: %w", rec[0], err)
		}
		p.Positions = append(p.Positions, model.Position{
			Symbol:          rec[0],
			Shares:          shares,
			PurchasePrice:   price,
			Fees:            fees,
			LastTransaction: txDate,
		})
	}
	if !haveBalance {
		return nil, fmt.Errorf("no balance column populated")
	}
	return p, nil
}
