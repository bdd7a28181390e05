package diplomacy

import (
	"math"
	"testing"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

const (
	envoyID = sim.FactionID("envoys")
	courtID = sim.FactionID("court")
)

func stepOne(t *testing.T, m interface {
	Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event])
}, cfg *Config, st *State, in Input) Event {
	t.Helper()
	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, in, &buf)
	events := buf.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	return events[0]
}

func TestStepLandsArgument(t *testing.T) {
	cfg := &Config{}
	st := NewState()
	st.AddRelation(envoyID, courtID, Relation{Score: 0, Resistance: 0.5})

	m := New(LinearInfluence{}, ProportionalResistance{}, NeutralContext{})
	ev := stepOne(t, m, cfg, st, Input{
		ActorID:   envoyID,
		TargetID:  courtID,
		Type:      ArgumentAppeal,
		Strength:  0.8,
		Favorable: true,
	})

	landed, ok := ev.(ArgumentLanded)
	if !ok {
		t.Fatalf("expected ArgumentLanded, got %T", ev)
	}
	if math.Abs(landed.After-0.4) > 1e-9 {
		t.Fatalf("expected score 0.4, got %v", landed.After)
	}
	rel, _ := st.Relation(envoyID, courtID)
	if math.Abs(rel.Score-0.4) > 1e-9 {
		t.Fatalf("expected stored score 0.4, got %v", rel.Score)
	}
}

func TestStepDismissesBelowThreshold(t *testing.T) {
	cfg := &Config{LandingThreshold: 0.5}
	st := NewState()
	st.AddRelation(envoyID, courtID, Relation{Score: 0.2, Resistance: 0.5})

	m := New(LinearInfluence{}, ProportionalResistance{}, NeutralContext{})
	ev := stepOne(t, m, cfg, st, Input{
		ActorID: envoyID, TargetID: courtID,
		Type: ArgumentAppeal, Strength: 0.8, Favorable: true,
	})

	if _, ok := ev.(ArgumentDismissed); !ok {
		t.Fatalf("expected ArgumentDismissed, got %T", ev)
	}
	rel, _ := st.Relation(envoyID, courtID)
	if rel.Score != 0.2 {
		t.Fatalf("dismissed argument must not move the score, got %v", rel.Score)
	}
}

func TestStepRejections(t *testing.T) {
	cases := []struct {
		name   string
		input  Input
		reason RejectReason
	}{
		{
			name:   "unknown relation",
			input:  Input{ActorID: "strangers", TargetID: courtID, Strength: 0.5},
			reason: ReasonUnknownRelation,
		},
		{
			name:   "strength above one",
			input:  Input{ActorID: envoyID, TargetID: courtID, Strength: 1.5},
			reason: ReasonInvalidStrength,
		},
		{
			name:   "negative strength",
			input:  Input{ActorID: envoyID, TargetID: courtID, Strength: -0.1},
			reason: ReasonInvalidStrength,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			st := NewState()
			st.AddRelation(envoyID, courtID, Relation{})

			m := New(LinearInfluence{}, ProportionalResistance{}, NeutralContext{})
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

func TestUnfavorableArgumentLowersScore(t *testing.T) {
	cfg := &Config{}
	st := NewState()
	st.AddRelation(envoyID, courtID, Relation{Score: 0.5})

	m := New(LinearInfluence{}, ProportionalResistance{}, NeutralContext{})
	ev := stepOne(t, m, cfg, st, Input{
		ActorID: envoyID, TargetID: courtID,
		Type: ArgumentThreat, Strength: 0.3, Favorable: false,
	})

	landed, ok := ev.(ArgumentLanded)
	if !ok {
		t.Fatalf("expected ArgumentLanded, got %T", ev)
	}
	if math.Abs(landed.After-0.2) > 1e-9 {
		t.Fatalf("expected score 0.2, got %v", landed.After)
	}
}

func TestScoreClampsAtBounds(t *testing.T) {
	cfg := &Config{}
	st := NewState()
	st.AddRelation(envoyID, courtID, Relation{Score: 0.9})

	m := New(LinearInfluence{}, ProportionalResistance{}, NeutralContext{})
	ev := stepOne(t, m, cfg, st, Input{
		ActorID: envoyID, TargetID: courtID,
		Type: ArgumentAppeal, Strength: 0.8, Favorable: true,
	})

	landed := ev.(ArgumentLanded)
	if landed.After != 1 {
		t.Fatalf("expected score clamped to 1, got %v", landed.After)
	}
}

func TestTypedInfluenceMultiplier(t *testing.T) {
	cfg := &Config{Multipliers: map[ArgumentType]float64{ArgumentThreat: 2}}
	p := TypedInfluence{}
	if got := p.Influence(0.3, ArgumentThreat, cfg); math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("expected influence 0.6, got %v", got)
	}
	if got := p.Influence(0.3, ArgumentAppeal, cfg); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected default multiplier 1, got %v", got)
	}
}

func TestThresholdResistanceBlocksWeakArguments(t *testing.T) {
	cfg := &Config{}
	p := ThresholdResistance{}
	if got := p.Resist(0.4, 0.5, cfg); got != 0 {
		t.Fatalf("expected blocked argument, got %v", got)
	}
	if got := p.Resist(0.6, 0.5, cfg); got != 0.6 {
		t.Fatalf("expected unblocked argument, got %v", got)
	}
}

func TestRelationContextFlipsForThreats(t *testing.T) {
	cfg := &Config{}
	p := RelationContext{}
	// A warm audience is receptive to appeals and shrugs off threats.
	if appeal, threat := p.Contextualize(1, ArgumentAppeal, 0.5, cfg), p.Contextualize(1, ArgumentThreat, 0.5, cfg); appeal <= threat {
		t.Fatalf("expected appeal to beat threat on warm relation, got %v vs %v", appeal, threat)
	}
	// A hostile audience works the other way.
	if appeal, threat := p.Contextualize(1, ArgumentAppeal, -0.5, cfg), p.Contextualize(1, ArgumentThreat, -0.5, cfg); threat <= appeal {
		t.Fatalf("expected threat to beat appeal on hostile relation, got %v vs %v", threat, appeal)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{LandingThreshold: 0.1}},
		{name: "negative multiplier", cfg: Config{Multipliers: map[ArgumentType]float64{ArgumentAppeal: -1}}, wantErr: true},
		{name: "threshold above one", cfg: Config{LandingThreshold: 1.5}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewRelationValidatesRanges(t *testing.T) {
	r, err := NewRelation(-0.4, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Score != -0.4 || r.Resistance != 0.7 {
		t.Fatalf("unexpected relation %+v", r)
	}

	if _, err := NewRelation(1.5, 0); err != sim.ErrSignedUnitRange {
		t.Fatalf("expected signed unit error, got %v", err)
	}
	if _, err := NewRelation(0, -0.1); err != sim.ErrUnitIntervalRange {
		t.Fatalf("expected unit interval error, got %v", err)
	}
}
