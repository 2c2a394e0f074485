// Package chart renders price history images.
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"StockRadar/internal/calculator"
	"StockRadar/internal/model"
)

// OverlayPeriod is the SMA window drawn over the close series.
const OverlayPeriod = 60

// RenderPrice renders a PNG line chart of closes with the 60-session SMA and
// the window's high/low band. Returns raw PNG bytes.
func RenderPrice(symbol string, bars []model.OHLCV) ([]byte, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("need at least 2 bars, got %d", len(bars))
	}

	xValues := make([]time.Time, len(bars))
	for i, b := range bars {
		xValues[i] = b.Time
	}
	closes := model.Closes(bars)

	closeSeries := chart.TimeSeries{
		Name: symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: closes,
	}
	series := []chart.Series{closeSeries}

	if len(closes) >= OverlayPeriod {
		sma, err := calculator.SMASeries(closes, OverlayPeriod)
		if err != nil {
			return nil, fmt.Errorf("sma overlay: %w", err)
		}
		start := OverlayPeriod - 1
		series = append(series, chart.TimeSeries{
			Name: fmt.Sprintf("SMA%d", OverlayPeriod),
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("f59e0b"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues[start:],
			YValues: sma[start:],
		})
	}

	high, low, err := calculator.CalculateRange(bars, 0)
	if err != nil {
		return nil, fmt.Errorf("price range: %w", err)
	}
	ends := []time.Time{xValues[0], xValues[len(xValues)-1]}
	for _, band := range []struct {
		name  string
		value float64
	}{{"High", high}, {"Low", low}} {
		series = append(series, chart.TimeSeries{
			Name: band.name,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1,
				StrokeDashArray: []float64{2.0, 2.0},
			},
			XValues: ends,
			YValues: []float64{band.value, band.value},
		})
	}
	series = append(series, chart.LastValueAnnotationSeries(closeSeries))

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s daily close", symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
