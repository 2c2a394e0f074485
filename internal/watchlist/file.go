package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"StockRadar/internal/model"
)

// readFile decodes the persisted ticker array. exists is false when the file
// has never been written.
func readFile(path string) (set model.TickerSet, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, err
	}
	var tickers []string
	if err := json.Unmarshal(data, &tickers); err != nil {
		return nil, true, fmt.Errorf("decode watchlist: %w", err)
	}
	return model.NewTickerSet(tickers...), true, nil
}

// writeFile replaces the file atomically: the sorted array is written to a
// temp file in the same directory, then renamed over the target.
func writeFile(path string, set model.TickerSet) error {
	data, err := json.MarshalIndent(set.Sorted(), "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".watchlist-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmpName, path)
}
