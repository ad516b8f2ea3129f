package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.csv"), dec("100000"))
	if !p.Balance.Equal(dec("100000")) {
		t.Errorf("balance: got %s, want 100000", p.Balance)
	}
	if len(p.Positions) != 0 {
		t.Errorf("expected no positions, got %+v", p.Positions)
	}
}

func TestLoad_MalformedFileReturnsDefaults(t *testing.T) {
	cases := map[string]string{
		"garbage":      "not,a\nportfolio at all",
		"empty":        "",
		"no balance":   "Symbol,Shares,Purchase Price,Transaction Fee,Transaction Date,Balance\nAAPL,10,150,3,2025-06-02 14:30:00,\n",
		"bad decimals": "Symbol,Shares,Purchase Price,Transaction Fee,Transaction Date,Balance\nAAPL,ten,150,3,2025-06-02 14:30:00,98497\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "portfolio.csv")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			p := Load(path, dec("100000"))
			if !p.Balance.Equal(dec("100000")) || len(p.Positions) != 0 {
				t.Errorf("expected fresh portfolio, got balance=%s positions=%+v", p.Balance, p.Positions)
			}
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(filepath.Join(t.TempDir(), "data"), "portfolio.csv")
	m := NewManager(path, DefaultOpeningBalance)
	m.now = func() time.Time {
		return time.Date(2025, 6, 2, 14, 30, 0, 0, time.Local)
	}
	if _, err := m.Buy("AAPL", dec("10"), dec("150")); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, err := m.Buy("MSFT", dec("2.5"), dec("400.10")); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	want := m.GetState()
	reloaded := NewManager(path, DefaultOpeningBalance).GetState()

	if !reloaded.Balance.Equal(want.Balance) {
		t.Errorf("balance: got %s, want %s", reloaded.Balance, want.Balance)
	}
	if len(reloaded.Positions) != len(want.Positions) {
		t.Fatalf("positions: got %d, want %d", len(reloaded.Positions), len(want.Positions))
	}
	for i, got := range reloaded.Positions {
		w := want.Positions[i]
		if got.Symbol != w.Symbol ||
			!got.Shares.Equal(w.Shares) ||
			!got.PurchasePrice.Equal(w.PurchasePrice) ||
			!got.Fees.Equal(w.Fees) ||
			!got.LastTransaction.Equal(w.LastTransaction) {
			t.Errorf("position %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestSave_BalanceOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	m := NewManager(path, DefaultOpeningBalance)
	if _, err := m.Buy("AAPL", dec("1"), dec("100")); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, err := m.Sell("AAPL", dec("1"), dec("100")); err != nil {
		t.Fatalf("Sell: %v", err)
	}

	reloaded := Load(path, decimal.NewFromInt(DefaultOpeningBalance))
	// Two fees of 0.2 each.
	if !reloaded.Balance.Equal(dec("99999.6")) {
		t.Errorf("balance: got %s, want 99999.6", reloaded.Balance)
	}
	if len(reloaded.Positions) != 0 {
		t.Errorf("expected no positions, got %+v", reloaded.Positions)
	}
}

func TestParsePortfolio_BalanceOnFirstRowOnly(t *testing.T) {
	data := "Symbol,Shares,Purchase Price,Transaction Fee,Transaction Date,Balance\n" +
		"AAPL,10,150,3,2025-06-02 14:30:00,98497\n" +
		"MSFT,2,400,1.6,2025-06-02 14:31:00,\n"
	p, err := parsePortfolio([]byte(data))
	if err != nil {
		t.Fatalf("parsePortfolio: %v", err)
	}
	if !p.Balance.Equal(dec("98497")) {
		t.Errorf("balance: got %s, want 98497", p.Balance)
	}
	if len(p.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(p.Positions))
	}
	if p.Positions[1].Symbol != "MSFT" || !p.Positions[1].Fees.Equal(dec("1.6")) {
		t.Errorf("unexpected second position: %+v", p.Positions[1])
	}
}
