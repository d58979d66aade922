// Package sessiondb is the external persistence collaborator for session
// state: a sqlite index of unlock/craft events plus whole-session snapshots.
// The rules engine never imports it; callers wire a Recorder in and decide
// when to snapshot.
package sessiondb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"paleotrek.quest/internal/game/inventory"
	"paleotrek.quest/internal/game/session"
)

type DB struct {
	db *sql.DB

	ch   chan row
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	mu sync.Mutex // guards synchronous snapshot reads/writes
}

type row struct {
	sessionID string
	ev        session.Event
}

// State is the persisted shape of a session: everything mutable, nothing
// derivable from content.
type State struct {
	Inventory inventory.Inventory `json:"inventory"`
	Unlocked  []string            `json:"unlocked"`
	Owned     map[string]int      `json:"owned"`
}

func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	d := &DB{
		db: db,
		ch: make(chan row, 4096),
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop()
	}()
	return d, nil
}

func initPragmas(db *sql.DB) error {
	// WAL suits the append-style event workload.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			target_id TEXT NOT NULL,
			score REAL,
			tier TEXT,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session_at ON events(session_id, at);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			session_id TEXT PRIMARY KEY,
			state_json TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) Close() error {
	var err error
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.ch)
		d.wg.Wait()
		err = d.db.Close()
	})
	return err
}

func (d *DB) loop() {
	for r := range d.ch {
		d.mu.Lock()
		_, _ = d.db.Exec(
			`INSERT INTO events (session_id, kind, target_id, score, tier, at) VALUES (?,?,?,?,?,?)`,
			r.sessionID, r.ev.Kind, r.ev.ID, r.ev.Score, r.ev.Tier,
			r.ev.At.UTC().Format(time.RFC3339Nano),
		)
		d.mu.Unlock()
	}
}

// Recorder adapts one session's events onto the shared database.
type Recorder struct {
	db        *DB
	sessionID string
}

func (d *DB) Recorder(sessionID string) *Recorder {
	return &Recorder{db: d, sessionID: sessionID}
}

func (r *Recorder) Record(ev session.Event) error {
	if r == nil || r.db == nil || r.db.closed.Load() {
		return nil
	}
	select {
	case r.db.ch <- row{sessionID: r.sessionID, ev: ev}:
	default:
		// Drop if the indexer falls behind; gameplay never blocks on it.
	}
	return nil
}

// SaveSnapshot upserts the full mutable state of a session.
func (d *DB) SaveSnapshot(sessionID string, st State) error {
	if d == nil || d.closed.Load() {
		return fmt.Errorf("sessiondb closed")
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err = d.db.Exec(
		`INSERT INTO snapshots (session_id, state_json, saved_at) VALUES (?,?,?)
		 ON CONFLICT(session_id) DO UPDATE SET state_json=excluded.state_json, saved_at=excluded.saved_at`,
		sessionID, string(b), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LoadSnapshot returns the stored state for a session; the second result is
// false when none exists.
func (d *DB) LoadSnapshot(sessionID string) (State, bool, error) {
	var st State
	if d == nil || d.closed.Load() {
		return st, false, fmt.Errorf("sessiondb closed")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var raw string
	err := d.db.QueryRow(
		`SELECT state_json FROM snapshots WHERE session_id = ?`, sessionID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return st, false, err
	}
	return st, true, nil
}

// EventCount reports how many events one session has recorded; used by
// tooling and tests after draining the writer.
func (d *DB) EventCount(sessionID string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE session_id = ?`, sessionID,
	).Scan(&n)
	return n, err
}
