package portfolio

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// sectorPalette cycles across sector slices, largest valuation first.
var sectorPalette = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("dc2626"), // red-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("7c3aed"), // violet-600
	drawing.ColorFromHex("0891b2"), // cyan-600
	drawing.ColorFromHex("db2777"), // pink-600
	drawing.ColorFromHex("65a30d"), // lime-600
	drawing.ColorFromHex("9ca3af"), // gray-400
}

// RenderSectorChart renders a PNG donut chart of valuation by sector.
// Returns raw PNG bytes.
func RenderSectorChart(sectorValuation map[string]float64) ([]byte, error) {
	if len(sectorValuation) == 0 {
		return nil, fmt.Errorf("no sector data to chart")
	}

	sectors := make([]string, 0, len(sectorValuation))
	for sector, valuation := range sectorValuation {
		if valuation > 0 {
			sectors = append(sectors, sector)
		}
	}
	if len(sectors) == 0 {
		return nil, fmt.Errorf("no sector data to chart")
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectorValuation[sectors[i]] > sectorValuation[sectors[j]]
	})

	values := make([]chart.Value, len(sectors))
	for i, sector := range sectors {
		values[i] = chart.Value{
			Label: sector,
			Value: sectorValuation[sector],
			Style: chart.Style{
				FillColor: sectorPalette[i%len(sectorPalette)],
			},
		}
	}

	graph := chart.DonutChart{
		Title:  "Valuation by Sector",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderDividendChart renders a PNG bar chart of projected dividends per
// calendar month (index 0 = January). Returns raw PNG bytes.
func RenderDividendChart(monthly [12]float64) ([]byte, error) {
	total := 0.0
	for _, v := range monthly {
		total += v
	}
	if total <= 0 {
		return nil, fmt.Errorf("no dividend data to chart")
	}

	bars := make([]chart.Value, len(monthly))
	for i, v := range monthly {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%d月", i+1),
			Value: v,
			Style: chart.Style{
				FillColor: drawing.ColorFromHex("16a34a"), // green-600
			},
		}
	}

	graph := chart.BarChart{
		Title:  "Projected Dividends by Month",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 50,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("¥%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
