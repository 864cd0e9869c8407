// Package store persists an append-only journal of spins so that disputed
// outcomes can be audited and, for explicitly seeded sessions, replayed.
// The journal records results only; live session state never touches disk.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Journal is a SQLite-backed spin log.
type Journal struct {
	db *sql.DB
}

// SpinRecord is one journaled spin. Monetary fields are stored as decimal
// strings to keep them exact.
type SpinRecord struct {
	ID        string
	SessionID string
	SeedHash  string
	SpinIndex int64
	Bet       string
	FreeSpin  bool
	TotalWin  string
	Balance   string
	Outcome   []byte // full SpinOutcome JSON
	CreatedAt time.Time
}

// Open opens (or creates) the journal database at path and runs migrations.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS spins (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			seed_hash TEXT NOT NULL,
			spin_index INTEGER NOT NULL,
			bet TEXT NOT NULL,
			free_spin INTEGER NOT NULL,
			total_win TEXT NOT NULL,
			balance TEXT NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spins_session ON spins(session_id, spin_index)`,
	}
	for _, m := range migrations {
		if _, err := j.db.Exec(m); err != nil {
			return fmt.Errorf("journal migration failed: %w", err)
		}
	}
	return nil
}

// SeedHash fingerprints seed material for the journal without storing the
// seed itself.
func SeedHash(seed []byte) string {
	if len(seed) == 0 {
		return ""
	}
	sum := sha256.Sum256(seed)
	return hex.EncodeToString(sum[:])
}

// Record appends one spin. The record's ID is assigned here if empty.
func (j *Journal) Record(ctx context.Context, rec *SpinRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO spins (id, session_id, seed_hash, spin_index, bet, free_spin, total_win, balance, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.SeedHash, rec.SpinIndex, rec.Bet,
		boolToInt(rec.FreeSpin), rec.TotalWin, rec.Balance, string(rec.Outcome))
	if err != nil {
		return fmt.Errorf("record spin: %w", err)
	}
	return nil
}

// SessionSpins returns a session's spins in spin order.
func (j *Journal) SessionSpins(ctx context.Context, sessionID string) ([]SpinRecord, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, seed_hash, spin_index, bet, free_spin, total_win, balance, outcome, created_at
		 FROM spins WHERE session_id = ? ORDER BY spin_index`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session spins: %w", err)
	}
	defer rows.Close()

	var records []SpinRecord
	for rows.Next() {
		var rec SpinRecord
		var free int
		var outcome string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.SeedHash, &rec.SpinIndex,
			&rec.Bet, &free, &rec.TotalWin, &rec.Balance, &outcome, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan spin record: %w", err)
		}
		rec.FreeSpin = free != 0
		rec.Outcome = []byte(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SessionCount returns the number of journaled spins for a session.
func (j *Journal) SessionCount(ctx context.Context, sessionID string) (int64, error) {
	var n int64
	err := j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spins WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count session spins: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
