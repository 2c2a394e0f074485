package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicker(t *testing.T) {
	got, err := ParseTicker("  0700.hk ")
	assert.NoError(t, err)
	assert.Equal(t, "0700.HK", got)

	_, err = ParseTicker("   ")
	assert.ErrorIs(t, err, ErrEmptyTicker)
}

func TestTickerSet(t *testing.T) {
	s := NewTickerSet("nvda", "AAPL", " ", "aapl")
	assert.Equal(t, []string{"AAPL", "NVDA"}, s.Sorted())

	assert.True(t, s.Has(" nvda"))
	assert.False(t, s.Add("NVDA"))
	assert.False(t, s.Add(""))
	assert.True(t, s.Add("msft"))

	c := s.Clone()
	assert.True(t, s.Remove("Msft"))
	assert.False(t, s.Remove("MSFT"))
	assert.True(t, c.Has("MSFT"), "clone is independent")
	assert.Equal(t, []string{"AAPL", "NVDA"}, s.Sorted())
}
