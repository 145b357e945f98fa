package models

import (
	"encoding/json"
	"testing"
)

func TestMetadataUnmarshalLiftsRecognizedKeys(t *testing.T) {
	raw := `{
		"long_name": "Toyota Motor Corporation",
		"short_name": "Toyota",
		"sector": "Consumer Cyclical",
		"trailing_pe": 10.5,
		"dividend_yield": 0.028,
		"market_cap": 350000000000,
		"exchange": "TSE"
	}`

	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if m.LongName != "Toyota Motor Corporation" {
		t.Errorf("LongName = %q", m.LongName)
	}
	if m.Sector != "Consumer Cyclical" {
		t.Errorf("Sector = %q", m.Sector)
	}
	if m.TrailingPE != 10.5 {
		t.Errorf("TrailingPE = %v", m.TrailingPE)
	}
	if m.DividendYield != 0.028 {
		t.Errorf("DividendYield = %v", m.DividendYield)
	}
	if len(m.Extra) != 2 {
		t.Fatalf("Extra has %d keys, want 2: %v", len(m.Extra), m.Extra)
	}
	if _, ok := m.Extra["market_cap"]; !ok {
		t.Error("market_cap missing from Extra")
	}
}

func TestMetadataRoundTripPreservesExtra(t *testing.T) {
	raw := `{"long_name":"Sony Group Corporation","exchange":"TSE","employees":113000}`

	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var round Metadata
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}

	if round.LongName != m.LongName {
		t.Errorf("LongName lost in round trip: %q", round.LongName)
	}
	if string(round.Extra["exchange"]) != `"TSE"` {
		t.Errorf("exchange lost in round trip: %s", round.Extra["exchange"])
	}
	if string(round.Extra["employees"]) != `113000` {
		t.Errorf("employees lost in round trip: %s", round.Extra["employees"])
	}
}

func TestMetadataEmptyMarshalsToEmptyObject(t *testing.T) {
	out, err := json.Marshal(&Metadata{})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("empty Metadata marshals to %s, want {}", out)
	}
}

func TestMetadataMalformedValueIgnored(t *testing.T) {
	// trailing_pe is a string here; the typed lift fails and the raw value
	// stays in Extra rather than failing the whole decode.
	raw := `{"long_name":"X","trailing_pe":"not-a-number"}`

	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if m.TrailingPE != 0 {
		t.Errorf("TrailingPE = %v, want 0", m.TrailingPE)
	}
	if _, ok := m.Extra["trailing_pe"]; !ok {
		t.Error("malformed trailing_pe should remain in Extra")
	}
}
