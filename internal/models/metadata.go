package models

import "encoding/json"

// Metadata holds externally sourced per-ticker attributes. The recognized
// fields are typed; everything else the provider returns is preserved in
// Extra so new provider fields survive a cache round-trip.
//
// All fields are best-effort: an empty Metadata{} is a valid "nothing known"
// value and is what downstream consumers see when a fetch failed.
type Metadata struct {
	LongName      string  `json:"-"`
	ShortName     string  `json:"-"`
	Sector        string  `json:"-"`
	TrailingPE    float64 `json:"-"`
	DividendYield float64 `json:"-"`

	Extra map[string]json.RawMessage `json:"-"`
}

// recognized field keys in the provider attribute bag
const (
	metaKeyLongName      = "long_name"
	metaKeyShortName     = "short_name"
	metaKeySector        = "sector"
	metaKeyTrailingPE    = "trailing_pe"
	metaKeyDividendYield = "dividend_yield"
)

// MetadataDB is the persisted metadata cache, keyed by ticker id.
type MetadataDB map[string]*Metadata

// UnmarshalJSON decodes the provider attribute bag, lifting recognized keys
// into typed fields and keeping the remainder verbatim in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dest interface{}) {
		if v, ok := raw[key]; ok {
			// Malformed values are dropped, not fatal; the bag is opaque.
			if json.Unmarshal(v, dest) == nil {
				delete(raw, key)
			}
		}
	}

	take(metaKeyLongName, &m.LongName)
	take(metaKeyShortName, &m.ShortName)
	take(metaKeySector, &m.Sector)
	take(metaKeyTrailingPE, &m.TrailingPE)
	take(metaKeyDividendYield, &m.DividendYield)

	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// MarshalJSON re-merges the typed fields with the residual attribute bag.
// Zero-valued typed fields are omitted so an empty Metadata round-trips to {}.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m.Extra)+5)
	for k, v := range m.Extra {
		out[k] = v
	}

	put := func(key string, value interface{}, include bool) error {
		if !include {
			return nil
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		out[key] = data
		return nil
	}

	if err := put(metaKeyLongName, m.LongName, m.LongName != ""); err != nil {
		return nil, err
	}
	if err := put(metaKeyShortName, m.ShortName, m.ShortName != ""); err != nil {
		return nil, err
	}
	if err := put(metaKeySector, m.Sector, m.Sector != ""); err != nil {
		return nil, err
	}
	if err := put(metaKeyTrailingPE, m.TrailingPE, m.TrailingPE != 0); err != nil {
		return nil, err
	}
	if err := put(metaKeyDividendYield, m.DividendYield, m.DividendYield != 0); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}
