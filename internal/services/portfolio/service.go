// Package portfolio aggregates holdings, quotes, metadata and dividend
// schedules into a display-ready snapshot
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

// yieldFractionMax is the normalization threshold for provider dividend
// yields. Providers disagree on whether yield is a fraction (0.042) or a
// percent (4.2); values at or below this are assumed fractional. The
// assumption breaks for a real yield above 50%, which does not occur in
// practice.
const yieldFractionMax = 0.5

// Service implements SnapshotService.
type Service struct {
	quotes    interfaces.QuoteService
	metadata  interfaces.MetadataService
	dividends interfaces.DividendService
	namer     *Namer
	logger    *common.Logger
	now       func() time.Time // injectable clock for testing
}

// NewService creates a new snapshot service.
func NewService(quotes interfaces.QuoteService, metadata interfaces.MetadataService, dividends interfaces.DividendService, namer *Namer, logger *common.Logger) *Service {
	return &Service{
		quotes:    quotes,
		metadata:  metadata,
		dividends: dividends,
		namer:     namer,
		logger:    logger,
		now:       time.Now,
	}
}

// ComputeSnapshot builds a portfolio snapshot for the given holdings.
// Tickers without a usable quote are excluded from the rows and every
// rollup. A panic anywhere in the aggregation is recovered into an error;
// the caller may clear caches and retry.
func (s *Service) ComputeSnapshot(ctx context.Context, holdings models.Holdings) (snapshot *models.PortfolioSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Snapshot computation panicked")
			snapshot = nil
			err = fmt.Errorf("snapshot computation failed: %v", r)
		}
	}()

	tickers := holdings.Tickers()
	quotes := s.quotes.GetQuotes(ctx, tickers)
	metas := s.metadata.Resolve(ctx, tickers)

	snapshot = &models.PortfolioSnapshot{
		GeneratedAt:     s.now(),
		Rows:            make([]models.HoldingRow, 0, len(tickers)),
		SectorValuation: make(map[string]float64),
	}

	for _, ticker := range tickers {
		q := quotes[ticker]
		if q == nil {
			s.logger.Debug().Str("ticker", ticker).Msg("No usable quote, excluding from snapshot")
			continue
		}

		meta := metas[ticker]
		if meta == nil {
			meta = &models.Metadata{}
		}
		holding := holdings[ticker]

		shares := float64(holding.Shares)
		valuation := q.Price * shares
		yieldPct := normalizeYieldPct(meta.DividendYield)
		dividendTotal := yieldPct / 100 * q.Price * shares
		payMonths := s.dividends.PaymentMonths(ctx, ticker)

		row := models.HoldingRow{
			Ticker:        ticker,
			Name:          s.namer.DisplayName(ticker, meta),
			Sector:        TranslateSector(meta.Sector),
			Price:         q.Price,
			ChangeAbs:     q.ChangeAbs,
			ChangePct:     q.ChangePct,
			TrailingPE:    meta.TrailingPE,
			YieldPct:      yieldPct,
			Shares:        holding.Shares,
			BuyPrice:      holding.BuyPrice,
			Valuation:     valuation,
			DividendTotal: dividendTotal,
			PayMonths:     payMonths,
		}

		// Cost-basis figures are meaningful only with a recorded buy price.
		if holding.BuyPrice > 0 {
			cost := holding.BuyPrice * shares
			row.PL = valuation - cost
			row.PLPct = (q.Price - holding.BuyPrice) / holding.BuyPrice * 100
			row.YOC = yieldPct / 100 * q.Price / holding.BuyPrice * 100
		}

		if dividendTotal > 0 && len(payMonths) > 0 {
			perMonth := dividendTotal / float64(len(payMonths))
			for _, m := range payMonths {
				snapshot.MonthlyDividends[m-1] += perMonth
			}
		}

		snapshot.Rows = append(snapshot.Rows, row)
		snapshot.TotalPL += row.PL
		snapshot.TotalDividend += dividendTotal
		snapshot.TotalValuation += valuation
		snapshot.SectorValuation[row.Sector] += valuation
	}

	if snapshot.TotalValuation > 0 {
		snapshot.AvgYieldPct = snapshot.TotalDividend / snapshot.TotalValuation * 100
	}

	s.logger.Debug().
		Int("holdings", len(tickers)).
		Int("rows", len(snapshot.Rows)).
		Float64("total_valuation", snapshot.TotalValuation).
		Msg("Snapshot computed")

	return snapshot, nil
}

// normalizeYieldPct converts a raw provider dividend yield to percent.
func normalizeYieldPct(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	if raw <= yieldFractionMax {
		return raw * 100
	}
	return raw
}

// Ensure Service implements SnapshotService
var _ interfaces.SnapshotService = (*Service)(nil)
