package models

import "time"

// Quote is a near-real-time price snapshot for one ticker, derived from the
// two most recent daily bars. Quotes are ephemeral: cached briefly in memory,
// never persisted.
type Quote struct {
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`
	ChangeAbs float64 `json:"change_abs"`
	ChangePct float64 `json:"change_pct"`
}

// Bar represents a single day's price data. Close is a pointer because the
// provider returns null closes for halted or unpriced days; those rows are
// dropped during quote extraction rather than treated as a zero price.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    *float64  `json:"close"`
	Volume   int64     `json:"volume"`
	Dividend float64   `json:"dividend,omitempty"`
}

// DividendEvent is one recorded ex-dividend date and per-share amount.
type DividendEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
