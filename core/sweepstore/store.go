// Package sweepstore persists checkpoints and audit events in SQLite so a
// restarted keeper does not forget its extraction history.
package sweepstore

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/reservefi/sweeper-sdk/core/logging"
	"github.com/reservefi/sweeper-sdk/core/types"
)

// Store is a SQLite-backed checkpoint ledger and audit event sink.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var (
	_ types.CheckpointLedger = (*Store)(nil)
	_ types.EventSink        = (*Store)(nil)
)

// NewStore opens or creates the database at path and ensures the schema
// exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	s := &Store{db: db, logger: logging.Logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS checkpoints (
			market TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			total_reserves TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			emitted_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_events_kind ON audit_events(kind)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// Get returns the stored checkpoint for a market, or the zero checkpoint
// if the market has never been dispatched.
func (s *Store) Get(market common.Address) (types.Checkpoint, error) {
	var timestamp int64
	var reserves string
	err := s.db.QueryRow(
		`SELECT timestamp, total_reserves FROM checkpoints WHERE market = ?`,
		market.Hex(),
	).Scan(&timestamp, &reserves)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ZeroCheckpoint(), nil
	}
	if err != nil {
		return types.Checkpoint{}, errors.Wrapf(err, "reading checkpoint for %s", market)
	}

	total, err := uint256.FromDecimal(reserves)
	if err != nil {
		return types.Checkpoint{}, errors.Wrapf(err, "corrupt reserve total %q for %s", reserves, market)
	}
	return types.Checkpoint{Timestamp: timestamp, TotalReserves: total}, nil
}

// Set overwrites the stored checkpoint for a market.
func (s *Store) Set(market common.Address, cp types.Checkpoint) error {
	total := cp.TotalReserves
	if total == nil {
		total = uint256.NewInt(0)
	}
	_, err := s.db.Exec(
		`INSERT INTO checkpoints (market, timestamp, total_reserves) VALUES (?, ?, ?)
		 ON CONFLICT(market) DO UPDATE SET timestamp = excluded.timestamp, total_reserves = excluded.total_reserves`,
		market.Hex(), cp.Timestamp, total.Dec(),
	)
	return errors.Wrapf(err, "writing checkpoint for %s", market)
}

// Emit appends an audit event. Sink failures must not abort a dispatch,
// so they are logged rather than returned.
func (s *Store) Emit(event types.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshaling audit event", zap.Error(err))
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO audit_events (id, kind, payload, emitted_at) VALUES (?, ?, ?, ?)`,
		event.ID().String(), string(event.Kind()), string(payload), time.Now().Unix(),
	)
	if err != nil {
		s.logger.Error("persisting audit event",
			zap.String("kind", string(event.Kind())),
			zap.Error(err),
		)
	}
}

// AuditEvent is one persisted audit-log row.
type AuditEvent struct {
	ID        string
	Kind      types.EventKind
	Payload   string
	EmittedAt int64
}

// Events returns up to limit persisted events of the given kind, newest
// first. An empty kind returns every kind.
func (s *Store) Events(kind types.EventKind, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, kind, payload, emitted_at FROM audit_events`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY emitted_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying audit events")
	}
	defer rows.Close()

	var out []AuditEvent
	for rows.Next() {
		var ev AuditEvent
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Payload, &ev.EmittedAt); err != nil {
			return nil, errors.Wrap(err, "scanning audit event")
		}
		out = append(out, ev)
	}
	return out, errors.Wrap(rows.Err(), "iterating audit events")
}
