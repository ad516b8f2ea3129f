package calculator

import (
	"fmt"

	"PaperDesk/internal/model"
)

// Fundamentals derives the WACC/CAPM valuation metrics:
//
//	taxRate      = taxProvision / pretaxIncome        (0 when pretaxIncome is 0)
//	costOfDebt   = interestExpense/totalDebt * (1-taxRate)  (0 when totalDebt is 0)
//	costOfEquity = riskFree + beta*(marketReturn - riskFree)
//	WACC         = E/V*costOfEquity + D/V*costOfDebt*(1-taxRate), V = E + D
//
// A missing beta is fatal (ErrMissingInput), never defaulted.
func Fundamentals(in model.FundamentalInputs) (model.FundamentalMetrics, error) {
	if in.Beta == nil {
		return model.FundamentalMetrics{}, fmt.Errorf("%w: beta", ErrMissingInput)
	}
	if in.MarketCap+in.TotalDebt == 0 {
		return model.FundamentalMetrics{}, fmt.Errorf("%w: market cap and total debt are both zero", ErrMissingInput)
	}

	var m model.FundamentalMetrics
	if in.PretaxIncome != 0 {
		m.TaxRate = in.TaxProvision / in.PretaxIncome
	}
	if in.TotalDebt != 0 {
		m.CostOfDebt = in.InterestExpense / in.TotalDebt * (1 - m.TaxRate)
	}
	m.CostOfEquity = in.RiskFreeRate + *in.Beta*(in.MarketReturn-in.RiskFreeRate)

	v := in.MarketCap + in.TotalDebt
	m.WACC = in.MarketCap/v*m.CostOfEquity + in.TotalDebt/v*m.CostOfDebt*(1-m.TaxRate)
	return m, nil
}
