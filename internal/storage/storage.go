package storage

import (
	"context"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/replay"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrClosed indicates an operation on a closed journal.
var ErrClosed = apperrors.New(apperrors.CodeJournalClosed, "journal is closed")

// Journal persists one recording durably.
type Journal interface {
	replay.Sink
	replay.Source
	Close() error
}

// Snapshot is a point-in-time capture of one domain's state.
type Snapshot struct {
	Domain string   `json:"domain"`
	Tick   sim.Tick `json:"tick"`
	State  []byte   `json:"state"`
}

// SnapshotStore persists the latest snapshot per domain.
type SnapshotStore interface {
	Put(ctx context.Context, snap Snapshot) error
	Get(ctx context.Context, domain string) (Snapshot, error)
	Close() error
}
