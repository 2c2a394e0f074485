package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockRadar/internal/model"
)

func makeBars(n int) []model.OHLCV {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + float64(i%17) - float64(i%5)
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1e6}
	}
	return bars
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderPrice_WithOverlay(t *testing.T) {
	img, err := RenderPrice("AAPL", makeBars(126))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderPrice_ShortHistorySkipsOverlay(t *testing.T) {
	img, err := RenderPrice("AAPL", makeBars(30))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestRenderPrice_TooFewBars(t *testing.T) {
	_, err := RenderPrice("AAPL", makeBars(1))
	assert.Error(t, err)
}
