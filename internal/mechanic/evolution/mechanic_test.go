package evolution

import (
	"math"
	"reflect"
	"testing"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
	"github.com/louisbranch/emergent.world/internal/sim/rng"
)

const lizardID = sim.EntityID("lizard")

func testConfig() *Config {
	return &Config{TraitBound: 10, StepSize: 1}
}

func TestStepDriftsTowardOptimum(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddOrganism(lizardID, map[string]float64{"heat_tolerance": 2})

	m := New(GradientDirection{}, ConstantRate{}, ProximityFitness{})
	env := map[string]float64{"heat_tolerance": 6}

	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{Environment: env, Elapsed: 1}, &buf)

	events := buf.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	shifted, ok := events[0].(TraitShifted)
	if !ok {
		t.Fatalf("expected TraitShifted, got %T", events[0])
	}
	if shifted.After != 3 {
		t.Fatalf("expected trait 3, got %v", shifted.After)
	}
	fit, ok := events[1].(FitnessChanged)
	if !ok {
		t.Fatalf("expected FitnessChanged, got %T", events[1])
	}
	// Gap of 3 against a bound of 10 scores 0.7.
	if math.Abs(fit.After-0.7) > 1e-9 {
		t.Fatalf("expected fitness 0.7, got %v", fit.After)
	}
}

func TestStepConvergesAndHolds(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddOrganism(lizardID, map[string]float64{"heat_tolerance": 4})

	m := New(GradientDirection{}, ConstantRate{}, ProximityFitness{})
	env := map[string]float64{"heat_tolerance": 6}

	var buf mechanic.Buffer[Event]
	for range 5 {
		m.Step(cfg, st, Input{Environment: env, Elapsed: 1}, &buf)
		buf.Discard()
	}

	org := st.Organisms[lizardID]
	if org.Traits["heat_tolerance"] != 6 {
		t.Fatalf("expected trait settled at 6, got %v", org.Traits["heat_tolerance"])
	}
	if org.Fitness != 1 {
		t.Fatalf("expected fitness 1 at optimum, got %v", org.Fitness)
	}

	// At the optimum a further epoch emits nothing.
	m.Step(cfg, st, Input{Environment: env, Elapsed: 1}, &buf)
	if got := buf.Len(); got != 0 {
		t.Fatalf("expected no events at optimum, got %d", got)
	}
}

func TestStepClampsTraitsToBounds(t *testing.T) {
	cfg := testConfig()
	cfg.StepSize = 100
	st := NewState()
	st.AddOrganism(lizardID, map[string]float64{"heat_tolerance": 5})

	m := New(GradientDirection{}, ConstantRate{}, ProximityFitness{})

	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{Environment: map[string]float64{"heat_tolerance": 9}, Elapsed: 1}, &buf)

	if got := st.Organisms[lizardID].Traits["heat_tolerance"]; got != cfg.TraitBound {
		t.Fatalf("expected trait clamped to %v, got %v", cfg.TraitBound, got)
	}
	buf.Discard()

	m.Step(cfg, st, Input{Environment: map[string]float64{"heat_tolerance": 0}, Elapsed: 1}, &buf)
	if got := st.Organisms[lizardID].Traits["heat_tolerance"]; got != 0 {
		t.Fatalf("expected trait clamped to 0, got %v", got)
	}
}

func TestStepExtinction(t *testing.T) {
	cfg := testConfig()
	cfg.ExtinctionBar = 0.5
	st := NewState()
	st.AddOrganism(lizardID, map[string]float64{"heat_tolerance": 0})

	m := New(GradientDirection{}, ConstantRate{}, ProximityFitness{})
	// Optimum 10 against trait 1 after drift scores 0.1, below the bar.
	env := map[string]float64{"heat_tolerance": 10}

	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{Environment: env, Elapsed: 1}, &buf)

	events := buf.Drain()
	last := events[len(events)-1]
	if _, ok := last.(Extinct); !ok {
		t.Fatalf("expected Extinct last, got %T", last)
	}
	if _, alive := st.Organisms[lizardID]; alive {
		t.Fatal("extinct organism must leave the state")
	}
}

func TestStepDeterministicWithSeed(t *testing.T) {
	run := func() []Event {
		cfg := testConfig()
		st := NewState()
		st.AddOrganism("a", map[string]float64{"size": 5, "speed": 5})
		st.AddOrganism("b", map[string]float64{"size": 5})

		m := New(RandomWalkDirection{}, ConstantRate{}, ProximityFitness{})
		var buf mechanic.Buffer[Event]
		for range 3 {
			m.Step(cfg, st, Input{
				Environment: map[string]float64{"size": 7, "speed": 3},
				Elapsed:     1,
				Rand:        rng.New(42),
			}, &buf)
		}
		return buf.Drain()
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Fatal("same seed must replay the same event stream")
	}
}

func TestDampedRateSlowsNearBound(t *testing.T) {
	cfg := testConfig()
	r := DampedRate{}
	low := r.Rate(1, 1, cfg)
	high := r.Rate(9, 1, cfg)
	if high >= low {
		t.Fatalf("expected damped rate near bound, got %v vs %v", high, low)
	}
	if got := r.Rate(cfg.TraitBound, 1, cfg); got != 0 {
		t.Fatalf("expected zero rate at bound, got %v", got)
	}
}

func TestThresholdFitness(t *testing.T) {
	cfg := testConfig()
	p := ThresholdFitness{}
	traits := map[string]float64{"size": 7.5, "speed": 1}
	env := map[string]float64{"size": 7, "speed": 9}
	// Size is within the tolerance of 1, speed is not.
	if got := p.Fitness(traits, env, cfg); got != 0.5 {
		t.Fatalf("expected fitness 0.5, got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: *testConfig()},
		{name: "zero bound", cfg: Config{TraitBound: 0, StepSize: 1}, wantErr: true},
		{name: "zero step", cfg: Config{TraitBound: 10, StepSize: 0}, wantErr: true},
		{name: "bad extinction bar", cfg: Config{TraitBound: 10, StepSize: 1, ExtinctionBar: 2}, wantErr: true},
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

func TestRandomWalkHoldsWithoutStream(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddOrganism(lizardID, map[string]float64{"size": 5})

	m := New(RandomWalkDirection{}, ConstantRate{}, ProximityFitness{})
	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{Environment: map[string]float64{"size": 7}, Elapsed: 1}, &buf)

	for _, ev := range buf.Drain() {
		if _, ok := ev.(TraitShifted); ok {
			t.Fatalf("expected no drift without a stream, got %+v", ev)
		}
	}
	if got := st.Organisms[lizardID].Traits["size"]; got != 5 {
		t.Fatalf("expected trait to hold at 5, got %v", got)
	}
}
