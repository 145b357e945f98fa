// Package models defines data structures for Asset Cockpit
package models

import (
	"sort"
	"strings"
	"unicode"
)

// Holding represents one tracked position: an aggregate cost basis and share
// count per ticker. A BuyPrice of 0 means "unset" (no cost basis recorded),
// not free shares.
type Holding struct {
	BuyPrice float64 `json:"buy_price"`
	Shares   int64   `json:"shares"`
}

// Holdings is the full holdings configuration, keyed by ticker id. This is
// the exact shape of the persisted holdings document and of export/import
// payloads.
type Holdings map[string]Holding

// Tickers returns the ticker ids in lexical order. The holdings file is a
// JSON object, so insertion order is not preserved; sorting keeps snapshot
// row order stable across runs.
func (h Holdings) Tickers() []string {
	tickers := make([]string, 0, len(h))
	for t := range h {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// NormalizeTicker expands a bare numeric security code to an exchange-
// qualified ticker id by appending the market suffix (e.g. "7203" -> "7203.T").
// Already-qualified ids are returned unchanged apart from whitespace trim.
func NormalizeTicker(code, marketSuffix string) string {
	code = strings.TrimSpace(code)
	if isNumericCode(code) {
		return code + marketSuffix
	}
	return code
}

func isNumericCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsTokyoTicker reports whether the ticker follows the Tokyo market
// convention (".T" suffix). Several heuristics key off this: the default
// dividend months {6, 12} and the aggressive display-name punctuation strip.
func IsTokyoTicker(ticker string) bool {
	return strings.HasSuffix(ticker, ".T")
}
