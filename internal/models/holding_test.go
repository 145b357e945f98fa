package models

import (
	"reflect"
	"testing"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		suffix string
		want   string
	}{
		{"bare 4-digit code", "7203", ".T", "7203.T"},
		{"already qualified", "7203.T", ".T", "7203.T"},
		{"whitespace trimmed", "  7203 ", ".T", "7203.T"},
		{"us ticker unchanged", "AAPL", ".T", "AAPL"},
		{"3 digits not a code", "720", ".T", "720"},
		{"5 digits not a code", "72030", ".T", "72030"},
		{"mixed alnum unchanged", "720A", ".T", "720A"},
		{"other market suffix", "0005", ".HK", "0005.HK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTicker(tt.code, tt.suffix); got != tt.want {
				t.Errorf("NormalizeTicker(%q, %q) = %q, want %q", tt.code, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestHoldingsTickersSorted(t *testing.T) {
	h := Holdings{
		"9984.T": {Shares: 100},
		"4661.T": {Shares: 100},
		"AAPL":   {Shares: 10},
		"7203.T": {Shares: 200},
	}

	got := h.Tickers()
	want := []string{"4661.T", "7203.T", "9984.T", "AAPL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tickers() = %v, want %v", got, want)
	}
}

func TestIsTokyoTicker(t *testing.T) {
	if !IsTokyoTicker("7203.T") {
		t.Error("7203.T should be a Tokyo ticker")
	}
	if IsTokyoTicker("AAPL") {
		t.Error("AAPL should not be a Tokyo ticker")
	}
	if IsTokyoTicker("0005.HK") {
		t.Error("0005.HK should not be a Tokyo ticker")
	}
}
