package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, defaults ...string) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data", "watchlist.json"), defaults, zerolog.Nop())
}

func readArray(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []string
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLoad_SeedsDefaultsOnFirstUse(t *testing.T) {
	s := newTestStore(t, "AAPL", "NVDA", "MSFT")

	got := s.Load()
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, got.Sorted())
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, readArray(t, s.Path()))
}

func TestAdd_NormalizesAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.Add("  tsla "))
	assert.False(t, s.Add("TSLA"))
	assert.False(t, s.Add("   "))
	assert.True(t, s.Load().Has("TSLA"))
	assert.Equal(t, []string{"TSLA"}, readArray(t, s.Path()))
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, "AAPL")

	assert.False(t, s.Remove("MSFT"))
	assert.True(t, s.Remove(" aapl"))
	assert.False(t, s.Remove("AAPL"))
	assert.Empty(t, s.Load())
	assert.Equal(t, []string{}, readArray(t, s.Path()))
}

func TestAddRemoveSymmetry(t *testing.T) {
	s := newTestStore(t, "AAPL", "NVDA")
	before := s.Load()

	require.True(t, s.Add("AMD"))
	require.True(t, s.Remove("AMD"))

	assert.Equal(t, before.Sorted(), s.Load().Sorted())
}

func TestLoad_CorruptFileFailsOpen(t *testing.T) {
	s := newTestStore(t, "AAPL")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	assert.Empty(t, s.Load())

	// A corrupt file is not reseeded with defaults.
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestAdd_LeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.Add("AAPL"))
	require.True(t, s.Add("MSFT"))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "watchlist.json", entries[0].Name())
}
