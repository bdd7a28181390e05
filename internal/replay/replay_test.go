package replay

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic/combat"
	"github.com/louisbranch/emergent.world/internal/mechanic/reputation"
	"github.com/louisbranch/emergent.world/internal/sim"
)

func newRegistry(t *testing.T) *CodecRegistry {
	t.Helper()
	reg := NewCodecRegistry()
	if err := reg.Register(combat.Codec{}); err != nil {
		t.Fatalf("register combat codec: %v", err)
	}
	if err := reg.Register(reputation.Codec{}); err != nil {
		t.Fatalf("register reputation codec: %v", err)
	}
	return reg
}

func record(t *testing.T, journal *MemoryJournal, seed int64) {
	t.Helper()
	ctx := context.Background()
	rec, err := NewRecorder(ctx, journal, newRegistry(t), seed)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	events := []struct {
		domain string
		event  any
	}{
		{"combat", combat.DamageDealt{AttackerID: "wolf", DefenderID: "elk", Amount: 10}},
		{"combat", combat.Defeated{EntityID: "elk"}},
		{"reputation", reputation.Changed{EntityID: "wolf", Before: 0, After: 5}},
	}
	for i, ev := range events {
		if err := rec.Record(ctx, sim.Tick(i+1), ev.domain, ev.event); err != nil {
			t.Fatalf("record event %d: %v", i, err)
		}
	}
}

func TestRecorderStreamsRecords(t *testing.T) {
	var journal MemoryJournal
	record(t, &journal, 42)

	ctx := context.Background()
	h, err := journal.Header(ctx)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if h.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", h.Seed)
	}
	if len(h.Domains) != 2 || h.Domains[0] != "combat" || h.Domains[1] != "reputation" {
		t.Fatalf("expected sorted domains, got %v", h.Domains)
	}

	records, err := journal.Read(ctx, 0, 10)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, r := range records {
		if r.Seq != uint64(i+1) {
			t.Fatalf("expected seq %d, got %d", i+1, r.Seq)
		}
		if err := CheckHash(r); err != nil {
			t.Fatalf("hash check at seq %d: %v", r.Seq, err)
		}
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var journal MemoryJournal
	record(t, &journal, 42)

	records, err := journal.Read(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	ev, err := Decode(newRegistry(t), records[0])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	dealt, ok := ev.(*combat.DamageDealt)
	if !ok {
		t.Fatalf("expected *combat.DamageDealt, got %T", ev)
	}
	if dealt.Amount != 10 {
		t.Fatalf("expected amount 10, got %d", dealt.Amount)
	}
}

func TestVerifyMatchingRecordings(t *testing.T) {
	var a, b MemoryJournal
	record(t, &a, 42)
	record(t, &b, 42)

	if err := Verify(context.Background(), &a, &b); err != nil {
		t.Fatalf("expected matching recordings, got %v", err)
	}
}

func TestVerifyReportsFirstDivergence(t *testing.T) {
	var a, b MemoryJournal
	record(t, &a, 42)
	record(t, &b, 42)

	b.records[1].Kind = "fled"
	b.records[1].Hash = HashRecord(b.records[1])

	err := Verify(context.Background(), &a, &b)
	if !errors.Is(err, apperrors.New(apperrors.CodeReplayDiverged, "")) {
		t.Fatalf("expected divergence error, got %v", err)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %T", err)
	}
	if appErr.Metadata["seq"] != "2" {
		t.Fatalf("expected divergence at seq 2, got %q", appErr.Metadata["seq"])
	}
}

func TestVerifyRejectsSeedMismatch(t *testing.T) {
	var a, b MemoryJournal
	record(t, &a, 42)
	record(t, &b, 43)

	err := Verify(context.Background(), &a, &b)
	if !errors.Is(err, apperrors.New(apperrors.CodeReplayDiverged, "")) {
		t.Fatalf("expected divergence error, got %v", err)
	}
}

func TestVerifyCatchesTamperedPayload(t *testing.T) {
	var a, b MemoryJournal
	record(t, &a, 42)
	record(t, &b, 42)

	b.records[0].Payload = []byte(`{"attacker_id":"bear"}`)

	err := Verify(context.Background(), &a, &b)
	if !errors.Is(err, apperrors.New(apperrors.CodeJournalHashMismatch, "")) {
		t.Fatalf("expected hash mismatch, got %v", err)
	}
}

func TestVerifyCatchesTruncation(t *testing.T) {
	var a, b MemoryJournal
	record(t, &a, 42)
	record(t, &b, 42)

	b.records = b.records[:2]

	err := Verify(context.Background(), &a, &b)
	if !errors.Is(err, apperrors.New(apperrors.CodeReplayDiverged, "")) {
		t.Fatalf("expected divergence error, got %v", err)
	}
}

func TestCodecRegistryRejectsDuplicates(t *testing.T) {
	reg := NewCodecRegistry()
	if err := reg.Register(combat.Codec{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := reg.Register(combat.Codec{})
	if !errors.Is(err, apperrors.New(apperrors.CodeRegistryDuplicateDomain, "")) {
		t.Fatalf("expected duplicate domain error, got %v", err)
	}
}

func TestHeaderValidate(t *testing.T) {
	cases := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{name: "valid", header: Header{Version: FormatVersion, Domains: []string{"combat"}}},
		{name: "wrong version", header: Header{Version: 99, Domains: []string{"combat"}}, wantErr: true},
		{name: "no domains", header: Header{Version: FormatVersion}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.header.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
