package inventory

import (
	"testing"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

const (
	packOwner = sim.EntityID("porter")
	ironID    = sim.ItemID("iron")
	clothID   = sim.ItemID("cloth")
)

func testConfig() *Config {
	return &Config{
		SlotLimit:  2,
		StackLimit: 10,
		CarryLimit: 20,
		Weights: map[sim.ItemID]float64{
			ironID:  2,
			clothID: 0.5,
		},
	}
}

func stepOne(t *testing.T, m Mechanic[SlotCapacity, UniformStacking, WeightCost], cfg *Config, st *State, in Input) Event {
	t.Helper()
	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, in, &buf)
	events := buf.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	return events[0]
}

func TestStepStoresAndRemoves(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddPack(packOwner)
	m := New(SlotCapacity{}, UniformStacking{}, WeightCost{})

	ev := stepOne(t, m, cfg, st, Input{EntityID: packOwner, ItemID: ironID, Quantity: 4, Op: OpStore})
	stored, ok := ev.(Stored)
	if !ok {
		t.Fatalf("expected Stored, got %T", ev)
	}
	if stored.Held != 4 {
		t.Fatalf("expected held 4, got %d", stored.Held)
	}

	ev = stepOne(t, m, cfg, st, Input{EntityID: packOwner, ItemID: ironID, Quantity: 4, Op: OpRemove})
	removed, ok := ev.(Removed)
	if !ok {
		t.Fatalf("expected Removed, got %T", ev)
	}
	if removed.Held != 0 {
		t.Fatalf("expected held 0, got %d", removed.Held)
	}
	if _, held := st.Packs[packOwner].Items[ironID]; held {
		t.Fatal("emptied stack must be dropped from the pack")
	}
}

func TestStepRejections(t *testing.T) {
	cases := []struct {
		name   string
		seed   func(p *Pack)
		input  Input
		reason RejectReason
	}{
		{
			name:   "unknown entity",
			input:  Input{EntityID: "ghost", ItemID: ironID, Quantity: 1, Op: OpStore},
			reason: ReasonUnknownEntity,
		},
		{
			name:   "invalid quantity",
			input:  Input{EntityID: packOwner, ItemID: ironID, Quantity: 0, Op: OpStore},
			reason: ReasonInvalidQuantity,
		},
		{
			name:   "unknown op",
			input:  Input{EntityID: packOwner, ItemID: ironID, Quantity: 1, Op: "swap"},
			reason: ReasonUnknownOp,
		},
		{
			name:   "stack limit",
			seed:   func(p *Pack) { p.Items[ironID] = 8 },
			input:  Input{EntityID: packOwner, ItemID: ironID, Quantity: 3, Op: OpStore},
			reason: ReasonStackLimit,
		},
		{
			name:   "slot limit",
			seed:   func(p *Pack) { p.Items[ironID] = 1; p.Items[clothID] = 1 },
			input:  Input{EntityID: packOwner, ItemID: "rope", Quantity: 1, Op: OpStore},
			reason: ReasonOverCapacity,
		},
		{
			name:   "missing items",
			seed:   func(p *Pack) { p.Items[ironID] = 2 },
			input:  Input{EntityID: packOwner, ItemID: ironID, Quantity: 5, Op: OpRemove},
			reason: ReasonMissingItems,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			st := NewState()
			pack := st.AddPack(packOwner)
			if tc.seed != nil {
				tc.seed(pack)
			}

			m := New(SlotCapacity{}, UniformStacking{}, WeightCost{})
			ev := stepOne(t, m, cfg, st, tc.input)
			rej, ok := ev.(Rejected)
			if !ok {
				t.Fatalf("expected Rejected, got %T", ev)
			}
			if rej.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, rej.Reason)
			}
		})
	}
}

func TestWeightCapacity(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	pack := st.AddPack(packOwner)
	pack.Items[ironID] = 9 // 18 of 20 weight used

	m := New(WeightCapacity{}, UniformStacking{}, WeightCost{})

	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{EntityID: packOwner, ItemID: clothID, Quantity: 4, Op: OpStore}, &buf)
	if _, ok := buf.Drain()[0].(Stored); !ok {
		t.Fatal("store within carry limit must succeed")
	}

	m.Step(cfg, st, Input{EntityID: packOwner, ItemID: clothID, Quantity: 1, Op: OpStore}, &buf)
	rej, ok := buf.Drain()[0].(Rejected)
	if !ok {
		t.Fatal("store past carry limit must be rejected")
	}
	if rej.Reason != ReasonOverCapacity {
		t.Fatalf("expected reason %q, got %q", ReasonOverCapacity, rej.Reason)
	}
}

func TestSingleStacking(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddPack(packOwner)

	m := New(SlotCapacity{}, SingleStacking{}, WeightCost{})

	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{EntityID: packOwner, ItemID: ironID, Quantity: 1, Op: OpStore}, &buf)
	if _, ok := buf.Drain()[0].(Stored); !ok {
		t.Fatal("first unit must store")
	}

	m.Step(cfg, st, Input{EntityID: packOwner, ItemID: ironID, Quantity: 1, Op: OpStore}, &buf)
	rej, ok := buf.Drain()[0].(Rejected)
	if !ok {
		t.Fatal("second unit must be rejected")
	}
	if rej.Reason != ReasonStackLimit {
		t.Fatalf("expected reason %q, got %q", ReasonStackLimit, rej.Reason)
	}
}

func TestRarityStacking(t *testing.T) {
	cfg := testConfig()
	cfg.Rarities = map[sim.ItemID]sim.Rarity{
		ironID:  sim.RarityRare,
		clothID: sim.RarityLegendary,
	}

	s := RarityStacking{}
	// Common default keeps the full stack limit.
	if got := s.Limit("stone", cfg); got != 10 {
		t.Fatalf("expected limit 10 for common, got %d", got)
	}
	// Rare halves twice: 10 >> 2.
	if got := s.Limit(ironID, cfg); got != 2 {
		t.Fatalf("expected limit 2 for rare, got %d", got)
	}
	// Legendary would shift to zero, the floor is one.
	if got := s.Limit(clothID, cfg); got != 1 {
		t.Fatalf("expected limit 1 for legendary, got %d", got)
	}
}

func TestFlatCost(t *testing.T) {
	cfg := testConfig()
	c := FlatCost{PerItem: 3}
	if got := c.Cost(ironID, 4, cfg); got != 12 {
		t.Fatalf("expected cost 12, got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "slot limit", mutate: func(c *Config) { c.SlotLimit = 0 }, wantErr: ErrInvalidSlotLimit},
		{name: "stack limit", mutate: func(c *Config) { c.StackLimit = -1 }, wantErr: ErrInvalidStackLimit},
		{name: "carry limit", mutate: func(c *Config) { c.CarryLimit = 0 }, wantErr: ErrInvalidCarryLimit},
		{name: "negative weight", mutate: func(c *Config) { c.Weights[ironID] = -1 }, wantErr: ErrNegativeWeight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
