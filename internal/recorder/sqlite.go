package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockRadar/internal/model"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{
		db:  db,
		log: log.With().Str("component", "recorder").Logger(),
		now: time.Now,
	}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS radar_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			level       TEXT NOT NULL,
			price       REAL,
			change_pct  REAL,
			sigma       REAL,
			volatility  REAL,
			signals     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_radar_symbol_ts ON radar_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS score_snapshots (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			symbol            TEXT NOT NULL,
			score             INTEGER,
			rating            TEXT,
			rsi               REAL,
			peg               REAL,
			profit_margin_pct REAL,
			level             TEXT,
			details           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_score_symbol_ts ON score_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRadar(rep model.AnomalyReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	signals, err := json.Marshal(rep.Signals)
	if err != nil {
		return err
	}
	var price, change, sigma, vol sql.NullFloat64
	if rep.Data != nil {
		price = sql.NullFloat64{Float64: rep.Data.Price, Valid: true}
		change = sql.NullFloat64{Float64: rep.Data.ChangePct, Valid: true}
		sigma = sql.NullFloat64{Float64: rep.Data.Sigma, Valid: true}
		vol = sql.NullFloat64{Float64: rep.Data.Volatility, Valid: true}
	}

	_, err = r.db.Exec(`INSERT INTO radar_snapshots
		(timestamp, symbol, level, price, change_pct, sigma, volatility, signals)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.now().Unix(), rep.Symbol, string(rep.Level), price, change, sigma, vol, string(signals),
	)
	return err
}

func (r *SQLiteRecorder) RecordScore(rep model.ScoreReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	details, err := json.Marshal(rep.Details)
	if err != nil {
		return err
	}
	var peg, margin sql.NullFloat64
	if rep.Metrics.PEG != nil {
		peg = sql.NullFloat64{Float64: *rep.Metrics.PEG, Valid: true}
	}
	if rep.Metrics.ProfitMarginPct != nil {
		margin = sql.NullFloat64{Float64: *rep.Metrics.ProfitMarginPct, Valid: true}
	}

	_, err = r.db.Exec(`INSERT INTO score_snapshots
		(timestamp, symbol, score, rating, rsi, peg, profit_margin_pct, level, details)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.now().Unix(), rep.Symbol, rep.Score, string(rep.Rating), rep.Metrics.RSI,
		peg, margin, string(rep.Anomaly.Level), string(details),
	)
	return err
}

// RadarHistory returns the newest snapshots for symbol, newest first.
func (r *SQLiteRecorder) RadarHistory(symbol string, limit int) ([]RadarRow, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := r.db.Query(`SELECT timestamp, symbol, level, price, change_pct, sigma, volatility, signals
		FROM radar_snapshots WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query radar history: %w", err)
	}
	defer rows.Close()

	out := []RadarRow{}
	for rows.Next() {
		var (
			ts                        int64
			row                       RadarRow
			level, signals            string
			price, change, sigma, vol sql.NullFloat64
		)
		if err := rows.Scan(&ts, &row.Symbol, &level, &price, &change, &sigma, &vol, &signals); err != nil {
			return nil, fmt.Errorf("scan radar row: %w", err)
		}
		row.Timestamp = time.Unix(ts, 0).UTC()
		row.Level = model.RiskLevel(level)
		row.Price, row.ChangePct = price.Float64, change.Float64
		row.Sigma, row.Volatility = sigma.Float64, vol.Float64
		if err := json.Unmarshal([]byte(signals), &row.Signals); err != nil {
			r.log.Warn().Err(err).Str("ticker", symbol).Msg("bad signals column")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
