package contagion

import (
	"errors"
	"testing"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/propagation"
	"github.com/louisbranch/emergent.world/internal/sim"
)

func defaultMechanic(cfg *Config) Mechanic[propagation.LinearSpread[Infection], propagation.IdentityMutation[Infection], propagation.StrongerProgression[Infection], LinearDecay] {
	return New(
		DefaultSpread(cfg),
		propagation.IdentityMutation[Infection]{},
		propagation.StrongerProgression[Infection]{},
		LinearDecay{Rate: cfg.DecayRate},
	)
}

func seedState(t *testing.T) *State {
	t.Helper()
	st := NewState()
	nodes := []propagation.Node[Infection]{
		{ID: "a", Kind: propagation.NodeKindPopulation, Payload: Infection{Severity: 1.0, Strain: "alpha"}},
		{ID: "b", Kind: propagation.NodeKindPopulation},
		{ID: "c", Kind: propagation.NodeKindPopulation},
	}
	for _, n := range nodes {
		if err := st.Topo.AddNode(n); err != nil {
			t.Fatalf("add node %s: %v", n.ID, err)
		}
	}
	edges := []propagation.Edge{
		{Source: "a", Target: "b", Weight: 0.6, Distance: 1},
		{Source: "a", Target: "c", Weight: 0.3, Distance: 1},
	}
	for _, e := range edges {
		if err := st.Topo.AddEdge(e); err != nil {
			t.Fatalf("add edge: %v", err)
		}
	}
	return st
}

func TestStepSpreadsAboveThreshold(t *testing.T) {
	cfg := &Config{Threshold: 0.5}
	st := seedState(t)

	buf := mechanic.NewBuffer[Event]()
	defaultMechanic(cfg).Step(cfg, st, Input{Elapsed: 1}, buf)
	events := buf.Drain()

	if len(events) != 2 {
		t.Fatalf("expected transmitted and progressed, got %d events", len(events))
	}
	tx := events[0].(Transmitted)
	if tx.Source != "a" || tx.Target != "b" || tx.Infection.Severity != 1.0 {
		t.Fatalf("unexpected transmission: %+v", tx)
	}
	prog := events[1].(Progressed)
	if prog.Node != "b" || prog.Severity != 1.0 {
		t.Fatalf("unexpected progression: %+v", prog)
	}
	if prog.Tier != sim.SeverityCritical {
		t.Fatalf("expected critical tier, got %v", prog.Tier)
	}

	b, _ := st.Topo.Node("b")
	if b.Payload.Severity != 1.0 {
		t.Fatalf("expected b severity 1.0, got %v", b.Payload.Severity)
	}
	c, _ := st.Topo.Node("c")
	if c.Payload.Severity != 0 {
		t.Fatalf("expected c untouched, got %v", c.Payload.Severity)
	}
}

func TestStepDecayToRecovery(t *testing.T) {
	cfg := &Config{Threshold: 2, DecayRate: 0.6}
	st := NewState()
	if err := st.Topo.AddNode(propagation.Node[Infection]{ID: "a", Payload: Infection{Severity: 1.0}}); err != nil {
		t.Fatalf("add node: %v", err)
	}

	m := defaultMechanic(cfg)
	buf := mechanic.NewBuffer[Event]()

	m.Step(cfg, st, Input{Elapsed: 1}, buf)
	events := buf.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if w, ok := events[0].(Waned); !ok || w.Severity != 0.4 {
		t.Fatalf("expected waned to 0.4, got %+v", events[0])
	}

	m.Step(cfg, st, Input{Elapsed: 1}, buf)
	events = buf.Drain()
	if _, ok := events[0].(Recovered); !ok {
		t.Fatalf("expected recovered, got %+v", events[0])
	}

	a, _ := st.Topo.Node("a")
	if a.Payload.Severity != 0 {
		t.Fatalf("expected severity 0 after recovery, got %v", a.Payload.Severity)
	}
}

func TestStepAttenuatingMutationWeakensInTransit(t *testing.T) {
	cfg := &Config{Threshold: 0.5}
	st := seedState(t)

	m := New(
		DefaultSpread(cfg),
		AttenuatingMutation{Loss: 0.2},
		propagation.StrongerProgression[Infection]{},
		LinearDecay{},
	)

	buf := mechanic.NewBuffer[Event]()
	m.Step(cfg, st, Input{Elapsed: 1}, buf)

	b, _ := st.Topo.Node("b")
	if b.Payload.Severity != 0.8 {
		t.Fatalf("expected attenuated severity 0.8, got %v", b.Payload.Severity)
	}
}

func TestStepAdditiveProgressionStacksSeverity(t *testing.T) {
	cfg := &Config{Threshold: 0.5}
	st := NewState()
	nodes := []propagation.Node[Infection]{
		{ID: "a", Payload: Infection{Severity: 1.0, Strain: "alpha"}},
		{ID: "b", Payload: Infection{Severity: 0.3, Strain: "beta"}},
	}
	for _, n := range nodes {
		if err := st.Topo.AddNode(n); err != nil {
			t.Fatalf("add node %s: %v", n.ID, err)
		}
	}
	if err := st.Topo.AddEdge(propagation.Edge{Source: "a", Target: "b", Weight: 0.6, Distance: 1}); err != nil {
		t.Fatalf("add edge: %v", err)
	}

	m := New(
		DefaultSpread(cfg),
		propagation.IdentityMutation[Infection]{},
		AdditiveProgression{Cap: 1.2},
		LinearDecay{},
	)
	buf := mechanic.NewBuffer[Event]()
	m.Step(cfg, st, Input{Elapsed: 1}, buf)

	b, _ := st.Topo.Node("b")
	if b.Payload.Severity != 1.2 {
		t.Fatalf("expected stacked severity capped at 1.2, got %v", b.Payload.Severity)
	}
	if b.Payload.Strain != "alpha" {
		t.Fatalf("expected incoming strain to tag the host, got %q", b.Payload.Strain)
	}
}

func TestStepProportionalDecayClearsAtFloor(t *testing.T) {
	cfg := &Config{Threshold: 2}
	st := NewState()
	if err := st.Topo.AddNode(propagation.Node[Infection]{ID: "a", Payload: Infection{Severity: 1.0}}); err != nil {
		t.Fatalf("add node: %v", err)
	}

	m := New(
		DefaultSpread(cfg),
		propagation.IdentityMutation[Infection]{},
		propagation.StrongerProgression[Infection]{},
		ProportionalDecay{Rate: 0.5, Floor: 0.3},
	)
	buf := mechanic.NewBuffer[Event]()

	m.Step(cfg, st, Input{Elapsed: 1}, buf)
	events := buf.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if w, ok := events[0].(Waned); !ok || w.Severity != 0.5 {
		t.Fatalf("expected waned to 0.5, got %+v", events[0])
	}

	// 0.25 falls below the floor and clears.
	m.Step(cfg, st, Input{Elapsed: 1}, buf)
	events = buf.Drain()
	if _, ok := events[0].(Recovered); !ok {
		t.Fatalf("expected recovered, got %+v", events[0])
	}
	a, _ := st.Topo.Node("a")
	if a.Payload.Severity != 0 {
		t.Fatalf("expected severity 0 after clearing, got %v", a.Payload.Severity)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "defaults", cfg: Config{}},
		{name: "explicit async", cfg: Config{Schedule: propagation.Asynchronous}},
		{name: "bad schedule", cfg: Config{Schedule: "eventually"}, wantErr: ErrInvalidSchedule},
		{name: "negative threshold", cfg: Config{Threshold: -0.1}, wantErr: ErrInvalidThreshold},
		{name: "negative decay", cfg: Config{DecayRate: -1}, wantErr: ErrInvalidDecayRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
