package replay

import (
	"context"

	"github.com/louisbranch/emergent.world/internal/sim"
)

// Sink receives the records of a recording in order.
type Sink interface {
	WriteHeader(ctx context.Context, h Header) error
	Append(ctx context.Context, r Record) error
}

// Recorder encodes emitted events into records and streams them to a sink.
type Recorder struct {
	sink   Sink
	codecs *CodecRegistry
	seq    uint64
}

// NewRecorder opens a recording on the sink with the given seed. The
// header names every registered codec domain.
func NewRecorder(ctx context.Context, sink Sink, codecs *CodecRegistry, seed int64) (*Recorder, error) {
	h := Header{Version: FormatVersion, Seed: seed, Domains: codecs.Domains()}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := sink.WriteHeader(ctx, h); err != nil {
		return nil, err
	}
	return &Recorder{sink: sink, codecs: codecs}, nil
}

// Record encodes one event and appends it to the recording.
func (r *Recorder) Record(ctx context.Context, tick sim.Tick, domain string, event any) error {
	codec, err := r.codecs.Lookup(domain)
	if err != nil {
		return err
	}
	kind, payload, err := codec.Encode(event)
	if err != nil {
		return err
	}

	r.seq++
	rec := Record{
		Seq:     r.seq,
		Tick:    tick,
		Domain:  domain,
		Kind:    kind,
		Payload: payload,
	}
	rec.Hash = HashRecord(rec)
	return r.sink.Append(ctx, rec)
}

// RecordEncoded appends an already encoded event. The domain must still
// have a registered codec so the recording stays decodable.
func (r *Recorder) RecordEncoded(ctx context.Context, tick sim.Tick, domain, kind string, payload []byte) error {
	if _, err := r.codecs.Lookup(domain); err != nil {
		return err
	}

	r.seq++
	rec := Record{
		Seq:     r.seq,
		Tick:    tick,
		Domain:  domain,
		Kind:    kind,
		Payload: payload,
	}
	rec.Hash = HashRecord(rec)
	return r.sink.Append(ctx, rec)
}

// Seq returns the sequence number of the last appended record.
func (r *Recorder) Seq() uint64 { return r.seq }
