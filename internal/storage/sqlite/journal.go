// Package sqlite provides the durable sqlite-backed journal.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/emergent.world/internal/replay"
	"github.com/louisbranch/emergent.world/internal/sim"
	"github.com/louisbranch/emergent.world/internal/storage"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Journal is a sqlite-backed recording journal.
type Journal struct {
	db *sql.DB
}

var _ storage.Journal = (*Journal)(nil)

// Open opens (creating if needed) a journal database at the given path and
// applies pending migrations. Use ":memory:" for an ephemeral journal.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	// The journal is append-mostly from a single writer.
	db.SetMaxOpenConns(1)

	if err := sqlitemigrate.ApplyMigrations(db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal db: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// WriteHeader stores the recording header. A journal holds exactly one
// recording, writing a second header is an error.
func (j *Journal) WriteHeader(ctx context.Context, h replay.Header) error {
	if j.db == nil {
		return storage.ErrClosed
	}
	domains, err := json.Marshal(h.Domains)
	if err != nil {
		return fmt.Errorf("marshal header domains: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO journal_header (id, version, seed, domains) VALUES (1, ?, ?, ?)`,
		h.Version, h.Seed, string(domains))
	if err != nil {
		return fmt.Errorf("write journal header: %w", err)
	}
	return nil
}

// Header returns the recording header.
func (j *Journal) Header(ctx context.Context) (replay.Header, error) {
	if j.db == nil {
		return replay.Header{}, storage.ErrClosed
	}
	var h replay.Header
	var domains string
	err := j.db.QueryRowContext(ctx,
		`SELECT version, seed, domains FROM journal_header WHERE id = 1`,
	).Scan(&h.Version, &h.Seed, &domains)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Header{}, storage.ErrNotFound
	}
	if err != nil {
		return replay.Header{}, fmt.Errorf("read journal header: %w", err)
	}
	if err := json.Unmarshal([]byte(domains), &h.Domains); err != nil {
		return replay.Header{}, apperrors.Wrap(apperrors.CodeRecordingHeaderBroken, "decode header domains", err)
	}
	return h, nil
}

// Append adds one record to the journal.
func (j *Journal) Append(ctx context.Context, r replay.Record) error {
	if j.db == nil {
		return storage.ErrClosed
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO journal_records (seq, tick, domain, kind, payload, hash) VALUES (?, ?, ?, ?, ?, ?)`,
		r.Seq, uint64(r.Tick), r.Domain, r.Kind, r.Payload, r.Hash)
	if err != nil {
		return fmt.Errorf("append journal record: %w", err)
	}
	return nil
}

// Read returns up to limit records with sequence numbers above fromSeq, in
// sequence order.
func (j *Journal) Read(ctx context.Context, fromSeq uint64, limit int) ([]replay.Record, error) {
	if j.db == nil {
		return nil, storage.ErrClosed
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, tick, domain, kind, payload, hash FROM journal_records WHERE seq > ? ORDER BY seq LIMIT ?`,
		fromSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("read journal records: %w", err)
	}
	defer rows.Close()

	var out []replay.Record
	for rows.Next() {
		var r replay.Record
		var tick uint64
		if err := rows.Scan(&r.Seq, &tick, &r.Domain, &r.Kind, &r.Payload, &r.Hash); err != nil {
			return nil, fmt.Errorf("scan journal record: %w", err)
		}
		r.Tick = sim.Tick(tick)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal records: %w", err)
	}
	return out, nil
}

// Len returns the number of records in the journal.
func (j *Journal) Len(ctx context.Context) (int, error) {
	if j.db == nil {
		return 0, storage.ErrClosed
	}
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count journal records: %w", err)
	}
	return n, nil
}
