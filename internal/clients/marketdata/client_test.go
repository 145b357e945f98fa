package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient("test-token", WithBaseURL(srv.URL), WithRateLimit(1000))
	return client, srv
}

func TestGetDailyBars(t *testing.T) {
	var gotQuery map[string]string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bars" {
			t.Errorf("path = %q, want /bars", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"symbols":   q.Get("symbols"),
			"period":    q.Get("period"),
			"api_token": q.Get("api_token"),
			"fmt":       q.Get("fmt"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"7203.T": []map[string]interface{}{
				{"date": "2026-08-28", "open": 2510, "high": 2560, "low": 2490, "close": 2550, "volume": 1200000},
				{"date": "2026-08-27", "open": 2480, "high": 2520, "low": 2460, "close": nil, "volume": 0},
			},
			"6758.T": []map[string]interface{}{
				{"date": "2026-08-28", "open": "3010", "high": "3060", "low": "2990", "close": "3050", "volume": 800000},
			},
		})
	})
	defer srv.Close()

	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	bars, err := client.GetDailyBars(context.Background(), []string{"7203.T", "6758.T"}, to.AddDate(0, 0, -9), to)
	if err != nil {
		t.Fatalf("GetDailyBars failed: %v", err)
	}

	if gotQuery["symbols"] != "7203.T,6758.T" {
		t.Errorf("symbols = %q", gotQuery["symbols"])
	}
	if gotQuery["api_token"] != "test-token" || gotQuery["fmt"] != "json" {
		t.Errorf("auth params = %v", gotQuery)
	}

	toyota := bars["7203.T"]
	if len(toyota) != 2 {
		t.Fatalf("got %d bars, want 2", len(toyota))
	}
	if toyota[0].Close == nil || *toyota[0].Close != 2550 {
		t.Errorf("Close = %v, want 2550", toyota[0].Close)
	}
	if toyota[1].Close != nil {
		t.Errorf("null close should stay nil, got %v", *toyota[1].Close)
	}

	// String-encoded numbers parse too.
	sony := bars["6758.T"]
	if len(sony) != 1 || sony[0].Close == nil || *sony[0].Close != 3050 {
		t.Errorf("string-encoded close not parsed: %+v", sony)
	}
}

func TestGetInfo(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/info/7203.T" {
			t.Errorf("path = %q, want /info/7203.T", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"long_name":"Toyota Motor Corporation","sector":"Consumer Cyclical","dividend_yield":0.028,"exchange":"TSE"}`))
	})
	defer srv.Close()

	meta, err := client.GetInfo(context.Background(), "7203.T")
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if meta.LongName != "Toyota Motor Corporation" {
		t.Errorf("LongName = %q", meta.LongName)
	}
	if meta.DividendYield != 0.028 {
		t.Errorf("DividendYield = %v", meta.DividendYield)
	}
	if _, ok := meta.Extra["exchange"]; !ok {
		t.Error("unrecognized field should land in Extra")
	}
}

func TestGetDividends(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dividends/7203.T" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2026-03-28","amount":40},{"date":"2025-09-27","amount":"35"}]`))
	})
	defer srv.Close()

	from := time.Date(2024, 8, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	events, err := client.GetDividends(context.Background(), "7203.T", from, to)
	if err != nil {
		t.Fatalf("GetDividends failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Date.Month() != time.March || events[0].Amount != 40 {
		t.Errorf("event[0] = %+v", events[0])
	}
	if events[1].Amount != 35 {
		t.Errorf("string amount not parsed: %+v", events[1])
	}
}

func TestGetHistoryDividendBars(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("events") != "dividends" {
			t.Errorf("events = %q, want dividends", r.URL.Query().Get("events"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2026-03-28","close":2500,"dividend":40},{"date":"2026-03-27","close":2490,"dividend":0}]`))
	})
	defer srv.Close()

	from := time.Date(2024, 8, 29, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	bars, err := client.GetHistory(context.Background(), "7203.T", from, to)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Dividend != 40 || bars[1].Dividend != 0 {
		t.Errorf("dividends = %v, %v", bars[0].Dividend, bars[1].Dividend)
	}
}

func TestAPIErrorStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.GetInfo(context.Background(), "7203.T")
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestFlexFloat64(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`""`, 0},
		{`"N/A"`, 0},
		{`"garbage"`, 0},
	}

	for _, tt := range tests {
		var f flexFloat64
		if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
			t.Errorf("unmarshal %s failed: %v", tt.raw, err)
			continue
		}
		if float64(f) != tt.want {
			t.Errorf("flexFloat64(%s) = %v, want %v", tt.raw, float64(f), tt.want)
		}
	}
}
