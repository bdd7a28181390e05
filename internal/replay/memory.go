package replay

import (
	"context"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// MemoryJournal is an in-memory recording, the zero value is ready to use.
// It backs tests and dry runs that do not need durable storage.
type MemoryJournal struct {
	header    Header
	hasHeader bool
	records   []Record
}

// WriteHeader stores the recording header.
func (m *MemoryJournal) WriteHeader(ctx context.Context, h Header) error {
	m.header = h
	m.hasHeader = true
	return nil
}

// Header returns the recording header.
func (m *MemoryJournal) Header(ctx context.Context) (Header, error) {
	if !m.hasHeader {
		return Header{}, apperrors.New(apperrors.CodeNotFound, "recording has no header")
	}
	return m.header, nil
}

// Append adds a record to the recording.
func (m *MemoryJournal) Append(ctx context.Context, r Record) error {
	m.records = append(m.records, r)
	return nil
}

// Read returns up to limit records with sequence numbers above fromSeq.
func (m *MemoryJournal) Read(ctx context.Context, fromSeq uint64, limit int) ([]Record, error) {
	var out []Record
	for _, r := range m.records {
		if r.Seq <= fromSeq {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Len returns the number of recorded records.
func (m *MemoryJournal) Len() int { return len(m.records) }
