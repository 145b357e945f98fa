package models

import "time"

// HoldingRow is one computed row of the portfolio snapshot. Rows exist only
// for holdings that had a quote this cycle; everything else is excluded from
// the snapshot entirely.
type HoldingRow struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Sector string `json:"sector"`

	Price     float64 `json:"price"`
	ChangeAbs float64 `json:"change_abs"`
	ChangePct float64 `json:"change_pct"`

	TrailingPE float64 `json:"trailing_pe,omitempty"` // 0 = unavailable
	YieldPct   float64 `json:"yield_pct"`

	Shares   int64   `json:"shares"`
	BuyPrice float64 `json:"buy_price"`

	Valuation     float64 `json:"valuation"`
	PL            float64 `json:"pl"`
	PLPct         float64 `json:"pl_pct"`
	YOC           float64 `json:"yoc"`
	DividendTotal float64 `json:"dividend_total"`
	PayMonths     []int   `json:"pay_months,omitempty"`
}

// PortfolioSnapshot is the complete output of one aggregation pass. It is
// recomputed on every request and never mutated after construction.
type PortfolioSnapshot struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Rows        []HoldingRow `json:"rows"`

	TotalPL        float64 `json:"total_pl"`
	TotalDividend  float64 `json:"total_dividend"`
	TotalValuation float64 `json:"total_valuation"`
	AvgYieldPct    float64 `json:"avg_yield_pct"`

	SectorValuation map[string]float64 `json:"sector_valuation"`
	// MonthlyDividends holds projected dividend cash per calendar month;
	// index 0 = January. All 12 entries are always present.
	MonthlyDividends [12]float64 `json:"monthly_dividends"`
}
