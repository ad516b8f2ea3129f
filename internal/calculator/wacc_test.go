package calculator

import (
	"errors"
	"testing"

	"PaperDesk/internal/model"
)

func TestFundamentals_KnownValues(t *testing.T) {
	beta := 1.2
	in := model.FundamentalInputs{
		MarketCap:       800,
		TotalDebt:       200,
		InterestExpense: 10,
		TaxProvision:    25,
		PretaxIncome:    100,
		Beta:            &beta,
		RiskFreeRate:    0.03,
		MarketReturn:    0.08,
	}
	m, err := Fundamentals(in)
	if err != nil {
		t.Fatalf("Fundamentals: %v", err)
	}
	if !almostEqual(m.TaxRate, 0.25, 1e-12) {
		t.Errorf("tax rate: got %g, want 0.25", m.TaxRate)
	}
	if !almostEqual(m.CostOfDebt, 0.0375, 1e-12) {
		t.Errorf("cost of debt: got %g, want 0.0375", m.CostOfDebt)
	}
	if !almostEqual(m.CostOfEquity, 0.09, 1e-12) {
		t.Errorf("cost of equity: got %g, want 0.09", m.CostOfEquity)
	}
	// 0.8*0.09 + 0.2*0.0375*0.75 = 0.077625
	if !almostEqual(m.WACC, 0.077625, 1e-12) {
		t.Errorf("WACC: got %g, want 0.077625", m.WACC)
	}
}

func TestFundamentals_MissingBetaIsFatal(t *testing.T) {
	in := model.FundamentalInputs{MarketCap: 800, TotalDebt: 200}
	if _, err := Fundamentals(in); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput, got %v", err)
	}
}

func TestFundamentals_ZeroDenominators(t *testing.T) {
	beta := 1.0
	in := model.FundamentalInputs{
		MarketCap:       500,
		TotalDebt:       0,
		InterestExpense: 10,
		TaxProvision:    25,
		PretaxIncome:    0,
		Beta:            &beta,
		RiskFreeRate:    0.03,
		MarketReturn:    0.08,
	}
	m, err := Fundamentals(in)
	if err != nil {
		t.Fatalf("Fundamentals: %v", err)
	}
	if m.TaxRate != 0 {
		t.Errorf("zero pretax income should yield tax rate 0, got %g", m.TaxRate)
	}
	if m.CostOfDebt != 0 {
		t.Errorf("zero debt should yield cost of debt 0, got %g", m.CostOfDebt)
	}
	// All-equity firm: WACC equals cost of equity.
	if !almostEqual(m.WACC, m.CostOfEquity, 1e-12) {
		t.Errorf("all-equity WACC %g should equal cost of equity %g", m.WACC, m.CostOfEquity)
	}

	in.MarketCap = 0
	if _, err := Fundamentals(in); !errors.Is(err, ErrMissingInput) {
		t.Errorf("expected ErrMissingInput for zero total value, got %v", err)
	}
}
