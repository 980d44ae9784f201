// Package tape keeps an append-only log of trade prints in a standalone
// sqlite file. Writes are best-effort by design: a failed print must
// never fail the matching pass that produced it.
package tape

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Print is one executed trade as it appeared on the tape.
type Print struct {
	ID            int64
	Symbol        string
	Price         string
	Qty           int64
	AggressorSide string
	ExecutedAt    time.Time
}

type Tape struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

func New(path string) (*Tape, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("tape path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, fmt.Errorf("opening tape db failed: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		price TEXT NOT NULL,
		qty INTEGER NOT NULL,
		aggressor_side TEXT NOT NULL,
		executed_at_ns INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tape schema failed: %w", err)
	}
	return &Tape{db: db, path: path}, nil
}

// Record appends one print.
func (t *Tape) Record(ctx context.Context, p Print) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO prints (symbol, price, qty, aggressor_side, executed_at_ns) VALUES (?, ?, ?, ?, ?)`,
		p.Symbol, p.Price, p.Qty, p.AggressorSide, p.ExecutedAt.UnixNano())
	return err
}

// Recent returns the latest prints for a symbol, newest first.
func (t *Tape) Recent(ctx context.Context, symbol string, limit int) ([]Print, error) {
	if limit <= 0 {
		limit = 50
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, err := t.db.QueryContext(ctx,
		`SELECT id, symbol, price, qty, aggressor_side, executed_at_ns
		 FROM prints WHERE symbol = ? ORDER BY id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Print
	for rows.Next() {
		var p Print
		var ns int64
		if err := rows.Scan(&p.ID, &p.Symbol, &p.Price, &p.Qty, &p.AggressorSide, &ns); err != nil {
			return nil, err
		}
		p.ExecutedAt = time.Unix(0, ns)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (t *Tape) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.Close()
}
