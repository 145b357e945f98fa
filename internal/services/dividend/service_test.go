package dividend

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

type fakeClient struct {
	events        map[string][]models.DividendEvent
	history       map[string][]models.Bar
	dividendCalls int
	historyCalls  int
	failDividends bool
	failHistory   bool
}

func (f *fakeClient) GetDividends(ctx context.Context, ticker string, from, to time.Time) ([]models.DividendEvent, error) {
	f.dividendCalls++
	if f.failDividends {
		return nil, fmt.Errorf("provider unavailable")
	}
	return f.events[ticker], nil
}

func (f *fakeClient) GetHistory(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	f.historyCalls++
	if f.failHistory {
		return nil, fmt.Errorf("provider unavailable")
	}
	return f.history[ticker], nil
}

func (f *fakeClient) GetDailyBars(ctx context.Context, tickers []string, from, to time.Time) (map[string][]models.Bar, error) {
	return nil, nil
}

func (f *fakeClient) GetInfo(ctx context.Context, ticker string) (*models.Metadata, error) {
	return &models.Metadata{}, nil
}

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestService(client *fakeClient) *Service {
	svc := NewService(client, common.NewSilentLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func exDate(year int, month time.Month) time.Time {
	return time.Date(year, month, 28, 0, 0, 0, 0, time.UTC)
}

func TestPaymentMonthsOffsetApplied(t *testing.T) {
	client := &fakeClient{events: map[string][]models.DividendEvent{
		"7203.T": {
			{Date: exDate(2025, time.March), Amount: 35},
			{Date: exDate(2025, time.September), Amount: 30},
			{Date: exDate(2026, time.March), Amount: 40},
		},
	}}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "7203.T")
	// March -> June, September -> December; duplicates collapse.
	if !reflect.DeepEqual(months, []int{6, 12}) {
		t.Errorf("months = %v, want [6 12]", months)
	}
}

func TestPaymentMonthsDecemberWrap(t *testing.T) {
	client := &fakeClient{events: map[string][]models.DividendEvent{
		"8591.T": {
			{Date: exDate(2025, time.October), Amount: 20},
			{Date: exDate(2025, time.November), Amount: 20},
			{Date: exDate(2025, time.December), Amount: 20},
		},
	}}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "8591.T")
	// October -> January, November -> February, December -> March.
	if !reflect.DeepEqual(months, []int{1, 2, 3}) {
		t.Errorf("months = %v, want [1 2 3]", months)
	}
}

func TestPaymentMonthsWindowExcludesOldEvents(t *testing.T) {
	client := &fakeClient{events: map[string][]models.DividendEvent{
		"7203.T": {
			{Date: exDate(2023, time.March), Amount: 30}, // beyond 24 months
			{Date: exDate(2026, time.March), Amount: 40},
		},
	}}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "7203.T")
	if !reflect.DeepEqual(months, []int{6}) {
		t.Errorf("months = %v, want [6]", months)
	}
}

func TestPaymentMonthsHistoryFallback(t *testing.T) {
	client := &fakeClient{
		history: map[string][]models.Bar{
			"6758.T": {
				{Date: exDate(2026, time.January), Dividend: 0},
				{Date: exDate(2026, time.March), Dividend: 25},
			},
		},
	}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "6758.T")
	if client.historyCalls != 1 {
		t.Errorf("historyCalls = %d, want 1", client.historyCalls)
	}
	if !reflect.DeepEqual(months, []int{6}) {
		t.Errorf("months = %v, want [6]", months)
	}
}

func TestPaymentMonthsTokyoDefault(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "9984.T")
	if !reflect.DeepEqual(months, []int{6, 12}) {
		t.Errorf("months = %v, want [6 12]", months)
	}
}

func TestPaymentMonthsNonTokyoDefaultEmpty(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "AAPL")
	if len(months) != 0 {
		t.Errorf("months = %v, want empty", months)
	}
}

func TestPaymentMonthsFetchErrorFallsBack(t *testing.T) {
	client := &fakeClient{failDividends: true}
	svc := newTestService(client)

	months := svc.PaymentMonths(context.Background(), "7203.T")
	if !reflect.DeepEqual(months, []int{6, 12}) {
		t.Errorf("months = %v, want [6 12] on fetch failure", months)
	}
}

func TestPaymentMonthsCached(t *testing.T) {
	client := &fakeClient{events: map[string][]models.DividendEvent{
		"7203.T": {{Date: exDate(2026, time.March), Amount: 40}},
	}}
	svc := newTestService(client)

	svc.PaymentMonths(context.Background(), "7203.T")
	svc.PaymentMonths(context.Background(), "7203.T")
	if client.dividendCalls != 1 {
		t.Errorf("dividendCalls = %d, want 1 (second call cached)", client.dividendCalls)
	}

	svc.Invalidate()
	svc.PaymentMonths(context.Background(), "7203.T")
	if client.dividendCalls != 2 {
		t.Errorf("dividendCalls = %d, want 2 after invalidate", client.dividendCalls)
	}
}

func TestPaymentMonthsCacheExpiry(t *testing.T) {
	client := &fakeClient{events: map[string][]models.DividendEvent{
		"7203.T": {{Date: exDate(2026, time.March), Amount: 40}},
	}}
	svc := NewService(client, common.NewSilentLogger())

	current := testNow
	svc.now = func() time.Time { return current }

	svc.PaymentMonths(context.Background(), "7203.T")
	current = current.Add(common.FreshnessDividendSchedule + time.Minute)
	svc.PaymentMonths(context.Background(), "7203.T")
	if client.dividendCalls != 2 {
		t.Errorf("dividendCalls = %d, want 2 after TTL expiry", client.dividendCalls)
	}
}
