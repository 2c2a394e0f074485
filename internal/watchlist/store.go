// Package watchlist persists the user's set of tracked tickers.
package watchlist

import (
	"sync"

	"github.com/rs/zerolog"

	"StockRadar/internal/model"
)

// Store is a file-backed ticker set. Reads fail open to an empty set;
// mutations are serialized within the process.
type Store struct {
	mu       sync.Mutex
	path     string
	defaults []string
	log      zerolog.Logger
}

// NewStore creates a Store at path. defaults seed the file on first use.
func NewStore(path string, defaults []string, log zerolog.Logger) *Store {
	return &Store{
		path:     path,
		defaults: defaults,
		log:      log.With().Str("component", "watchlist").Logger(),
	}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted set, or an empty set if it cannot be read.
func (s *Store) Load() model.TickerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add inserts ticker and persists. It returns false for blank or already
// present tickers, and when the write fails.
func (s *Store) Add(ticker string) bool {
	t := model.NormalizeTicker(ticker)
	if t == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load()
	if !set.Add(t) {
		return false
	}
	if err := writeFile(s.path, set); err != nil {
		s.log.Error().Err(err).Str("ticker", t).Msg("failed to save watchlist")
		return false
	}
	s.log.Info().Str("ticker", t).Msg("added to watchlist")
	return true
}

// Remove deletes ticker and persists. It returns false when the ticker is
// absent or the write fails.
func (s *Store) Remove(ticker string) bool {
	t := model.NormalizeTicker(ticker)

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.load()
	if !set.Remove(t) {
		return false
	}
	if err := writeFile(s.path, set); err != nil {
		s.log.Error().Err(err).Str("ticker", t).Msg("failed to save watchlist")
		return false
	}
	s.log.Info().Str("ticker", t).Msg("removed from watchlist")
	return true
}

func (s *Store) load() model.TickerSet {
	set, exists, err := readFile(s.path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("watchlist unreadable, using empty set")
		return model.TickerSet{}
	}
	if exists {
		return set
	}

	seed := model.NewTickerSet(s.defaults...)
	if err := writeFile(s.path, seed); err != nil {
		s.log.Warn().Err(err).Msg("failed to seed watchlist")
	}
	return seed
}
