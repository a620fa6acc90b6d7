// Package ledger records allocator events to a SQLite database.
//
// A Ledger is an alloc.Hook. Events are buffered in memory and written in
// one transaction per batch, so a long run costs a handful of commits rather
// than one per event. The ledger is an audit trail; nothing reads it during
// a run. Open ledgers are flushed by atexit.Exit, so buffered events survive
// a CLI that exits through it.
//
// A Ledger is NOT thread-safe.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/atexit"

	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/joshuapare/mediakit/media"
	"github.com/joshuapare/mediakit/media/alloc"
)

// DefaultBatchSize is the number of events buffered before a commit.
const DefaultBatchSize = 256

// ErrClosed is returned after Close.
var ErrClosed = errors.New("ledger: closed")

// open holds the ledgers not yet closed. The atexit handler is registered
// once per process.
var (
	openMu   sync.Mutex
	open     = map[*Ledger]struct{}{}
	exitOnce sync.Once
)

func track(l *Ledger) {
	openMu.Lock()
	open[l] = struct{}{}
	openMu.Unlock()
	exitOnce.Do(func() {
		atexit.Register(func() { _ = FlushAll() })
	})
}

func untrack(l *Ledger) {
	openMu.Lock()
	delete(open, l)
	openMu.Unlock()
}

// FlushAll flushes every open ledger. It runs from atexit.Exit.
func FlushAll() error {
	openMu.Lock()
	ledgers := make([]*Ledger, 0, len(open))
	for l := range open {
		ledgers = append(ledgers, l)
	}
	openMu.Unlock()

	var errs []error
	for _, l := range ledgers {
		errs = append(errs, l.Flush())
	}
	return errors.Join(errs...)
}

// Row is one recorded event.
type Row struct {
	RunID      string
	Ordinal    int
	Kind       string
	SegmentID  string
	SegmentSeq int
	Remaining  time.Duration
	Total      time.Duration
	Item       string
	ItemLength time.Duration
	Err        string
	At         time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithBatchSize sets how many events are buffered before a commit.
// Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

// Ledger buffers allocator events and writes them to SQLite.
type Ledger struct {
	db        *sql.DB
	insert    *sql.Stmt
	runID     string
	batchSize int
	pending   []Row
	ordinal   int
	err       error // first write error, reported by Flush and Close
	closed    bool
	now       func() time.Time
}

// Open opens (creating if needed) the database at path and prepares it to
// record events for runID.
func Open(path, runID string, opts ...Option) (*Ledger, error) {
	if runID == "" {
		return nil, errors.New("ledger: empty run id")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}

	l := &Ledger{
		db:        db,
		runID:     runID,
		batchSize: DefaultBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	l.insert, err = db.Prepare(`INSERT INTO events
		(run_id, ordinal, kind, segment_id, segment_seq, remaining_ms, total_ms, item, item_ms, error, at_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: prepare insert: %w", err)
	}
	track(l)
	return l, nil
}

func (l *Ledger) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events
		(
			run_id       VARCHAR(32)  NOT NULL,
			ordinal      INTEGER      NOT NULL,
			kind         VARCHAR(32)  NOT NULL,
			segment_id   VARCHAR(32)  NOT NULL DEFAULT '',
			segment_seq  INTEGER      NOT NULL DEFAULT 0,
			remaining_ms INTEGER      NOT NULL DEFAULT 0,
			total_ms     INTEGER      NOT NULL DEFAULT 0,
			item         VARCHAR(512) NOT NULL DEFAULT '',
			item_ms      INTEGER      NOT NULL DEFAULT 0,
			error        TEXT         NOT NULL DEFAULT '',
			at_ns        INTEGER      NOT NULL,
			PRIMARY KEY (run_id, ordinal)
		)`,
		`CREATE INDEX IF NOT EXISTS events_kind_index ON events (kind)`,
		`CREATE INDEX IF NOT EXISTS events_segment_index ON events (segment_id)`,
	}
	for _, s := range stmts {
		if _, err := l.db.Exec(s); err != nil {
			return fmt.Errorf("ledger: create schema: %w", err)
		}
	}
	return nil
}

// RunID returns the run the ledger records for.
func (l *Ledger) RunID() string {
	return l.runID
}

// OnEvent implements alloc.Hook.
func (l *Ledger) OnEvent(e alloc.Event) {
	if l.closed {
		return
	}
	row := Row{
		RunID:      l.runID,
		Ordinal:    l.ordinal,
		Kind:       e.Kind.String(),
		SegmentID:  e.Segment.ID,
		SegmentSeq: e.Segment.Seq,
		Remaining:  e.Segment.Remaining,
		Total:      e.Segment.Total,
		At:         l.now(),
	}
	if e.Item != nil {
		row.Item = media.Label(e.Item)
		row.ItemLength = e.Item.Duration()
	}
	if e.Err != nil {
		row.Err = e.Err.Error()
	}
	l.ordinal++

	l.pending = append(l.pending, row)
	if len(l.pending) >= l.batchSize {
		if err := l.Flush(); err != nil && l.err == nil {
			l.err = err
		}
	}
}

// Flush writes buffered events in a single transaction.
func (l *Ledger) Flush() error {
	if l.closed {
		return ErrClosed
	}
	if len(l.pending) == 0 {
		return l.err
	}

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("ledger: begin: %w", err)
	}
	stmt := tx.Stmt(l.insert)
	for _, r := range l.pending {
		_, err := stmt.Exec(r.RunID, r.Ordinal, r.Kind, r.SegmentID, r.SegmentSeq,
			r.Remaining.Milliseconds(), r.Total.Milliseconds(),
			r.Item, r.ItemLength.Milliseconds(), r.Err, r.At.UnixNano())
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("ledger: insert event %d: %w", r.Ordinal, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ledger: commit: %w", err)
	}
	l.pending = l.pending[:0]
	return l.err
}

// Pending returns the number of buffered events.
func (l *Ledger) Pending() int {
	return len(l.pending)
}

// Close flushes and closes the database. Calling Close twice is a no-op.
func (l *Ledger) Close() error {
	if l.closed {
		return nil
	}
	flushErr := l.Flush()
	l.closed = true
	untrack(l)
	return errors.Join(flushErr, l.insert.Close(), l.db.Close())
}

// ReadEvents returns the events recorded for runID in order.
func ReadEvents(path, runID string) ([]Row, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT run_id, ordinal, kind, segment_id, segment_seq,
		remaining_ms, total_ms, item, item_ms, error, at_ns
		FROM events WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("ledger: query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r                      Row
			remMS, totalMS, itemMS int64
			atNS                   int64
		)
		if err := rows.Scan(&r.RunID, &r.Ordinal, &r.Kind, &r.SegmentID, &r.SegmentSeq,
			&remMS, &totalMS, &r.Item, &itemMS, &r.Err, &atNS); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		r.Remaining = time.Duration(remMS) * time.Millisecond
		r.Total = time.Duration(totalMS) * time.Millisecond
		r.ItemLength = time.Duration(itemMS) * time.Millisecond
		r.At = time.Unix(0, atNS)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Compile-time interface check
var _ alloc.Hook = (*Ledger)(nil)
