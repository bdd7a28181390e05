package replay

import (
	"bytes"
	"context"
	"strconv"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
)

// Source streams a recording back in order.
type Source interface {
	Header(ctx context.Context) (Header, error)
	// Read returns up to limit records with sequence numbers above
	// fromSeq. An empty slice signals the end of the recording.
	Read(ctx context.Context, fromSeq uint64, limit int) ([]Record, error)
}

// readPage is the batch size for paged verification reads.
const readPage = 256

func divergence(seq uint64, field string) error {
	return apperrors.WithMetadata(apperrors.CodeReplayDiverged, "recordings diverge",
		map[string]string{"seq": strconv.FormatUint(seq, 10), "field": field})
}

// CompareRecords reports the first divergence between two records of the
// same stream position.
func CompareRecords(want, got Record) error {
	switch {
	case want.Seq != got.Seq:
		return divergence(want.Seq, "seq")
	case want.Tick != got.Tick:
		return divergence(want.Seq, "tick")
	case want.Domain != got.Domain:
		return divergence(want.Seq, "domain")
	case want.Kind != got.Kind:
		return divergence(want.Seq, "kind")
	case !bytes.Equal(want.Payload, got.Payload):
		return divergence(want.Seq, "payload")
	case want.Hash != got.Hash:
		return divergence(want.Seq, "hash")
	}
	return nil
}

// Verify walks two recordings and returns the first divergence, or nil
// when they match record for record. Both headers are validated and every
// record's content hash is rechecked along the way.
func Verify(ctx context.Context, want, got Source) error {
	wh, err := want.Header(ctx)
	if err != nil {
		return err
	}
	if err := wh.Validate(); err != nil {
		return err
	}
	gh, err := got.Header(ctx)
	if err != nil {
		return err
	}
	if err := gh.Validate(); err != nil {
		return err
	}
	if wh.Seed != gh.Seed {
		return apperrors.New(apperrors.CodeReplayDiverged, "recordings use different seeds")
	}

	var from uint64
	for {
		wantPage, err := want.Read(ctx, from, readPage)
		if err != nil {
			return err
		}
		gotPage, err := got.Read(ctx, from, readPage)
		if err != nil {
			return err
		}

		for i, w := range wantPage {
			if i >= len(gotPage) {
				return divergence(w.Seq, "missing")
			}
			if err := CheckHash(w); err != nil {
				return err
			}
			if err := CheckHash(gotPage[i]); err != nil {
				return err
			}
			if err := CompareRecords(w, gotPage[i]); err != nil {
				return err
			}
		}
		if len(gotPage) > len(wantPage) {
			return divergence(gotPage[len(wantPage)].Seq, "extra")
		}
		if len(wantPage) < readPage {
			return nil
		}
		from = wantPage[len(wantPage)-1].Seq
	}
}

// Decode resolves a record back into its domain event.
func Decode(codecs *CodecRegistry, r Record) (any, error) {
	codec, err := codecs.Lookup(r.Domain)
	if err != nil {
		return nil, err
	}
	return codec.Decode(r.Kind, r.Payload)
}
