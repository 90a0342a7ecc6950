package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so web reads don't block scheduled writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			etf_code    TEXT NOT NULL,
			date        TEXT NOT NULL,
			close       REAL NOT NULL,
			category    TEXT NOT NULL,
			strength    REAL,
			k_value     REAL,
			d_value     REAL,
			macd        REAL,
			macd_signal REAL,
			rsi         REAL,
			recorded_at INTEGER NOT NULL,
			UNIQUE(etf_code, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_code_date ON signals(etf_code, date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSignal inserts the daily signal for an ETF, replacing any earlier
// record for the same trading date.
func (r *SQLiteRecorder) RecordSignal(code string, sig model.LatestSignal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO signals
		(etf_code, date, close, category, strength, k_value, d_value, macd, macd_signal, rsi, recorded_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		code, sig.Date.Format("2006-01-02"), sig.Close, string(sig.Category),
		nullable(sig.Strength), nullable(sig.K), nullable(sig.D),
		nullable(sig.MACD), nullable(sig.MACDSignal), nullable(sig.RSI),
		time.Now().Unix(),
	)
	return err
}

// Recent returns up to limit records for an ETF, newest first.
func (r *SQLiteRecorder) Recent(code string, limit int) ([]SignalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT date, close, category, strength, k_value, d_value, macd, macd_signal, rsi, recorded_at
		FROM signals WHERE etf_code = ? ORDER BY date DESC LIMIT ?`, code, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SignalRecord
	for rows.Next() {
		var (
			dateStr    string
			category   string
			recordedAt int64
			rec        SignalRecord
			strength   sql.NullFloat64
			k, d       sql.NullFloat64
			macd, msig sql.NullFloat64
			rsi        sql.NullFloat64
		)
		if err := rows.Scan(&dateStr, &rec.Signal.Close, &category,
			&strength, &k, &d, &macd, &msig, &rsi, &recordedAt); err != nil {
			return nil, err
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		rec.Code = code
		rec.Signal.Date = date
		rec.Signal.Category = model.SignalCategory(category)
		rec.Signal.Strength = fromNull(strength)
		rec.Signal.K = fromNull(k)
		rec.Signal.D = fromNull(d)
		rec.Signal.MACD = fromNull(macd)
		rec.Signal.MACDSignal = fromNull(msig)
		rec.Signal.RSI = fromNull(rsi)
		rec.RecordedAt = time.Unix(recordedAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
