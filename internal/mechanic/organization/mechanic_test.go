package organization

import (
	"fmt"
	"math"
	"testing"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

const guildID = sim.FactionID("guild")

func testConfig() *Config {
	return &Config{
		OptimalSize:   4,
		RequiredRoles: []Role{"smith", "trader"},
	}
}

func TestStepJoinRaisesEfficiency(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	st.AddOrg(guildID)

	m := New(SizeFit{})
	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{OrgID: guildID, MemberID: "anvil", Role: "smith", Op: OpJoin}, &buf)

	events := buf.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	joined, ok := events[0].(MemberJoined)
	if !ok {
		t.Fatalf("expected MemberJoined, got %T", events[0])
	}
	if joined.Size != 1 {
		t.Fatalf("expected size 1, got %d", joined.Size)
	}
	eff, ok := events[1].(EfficiencyChanged)
	if !ok {
		t.Fatalf("expected EfficiencyChanged, got %T", events[1])
	}
	// One member against an optimum of four scores 0.25.
	if math.Abs(eff.After-0.25) > 1e-9 {
		t.Fatalf("expected efficiency 0.25, got %v", eff.After)
	}
}

func TestStepLeave(t *testing.T) {
	cfg := testConfig()
	st := NewState()
	org := st.AddOrg(guildID)
	org.Members["anvil"] = "smith"
	org.Members["scale"] = "trader"
	org.Efficiency = 0.5

	m := New(SizeFit{})
	var buf mechanic.Buffer[Event]
	m.Step(cfg, st, Input{OrgID: guildID, MemberID: "scale", Op: OpLeave}, &buf)

	events := buf.Drain()
	left, ok := events[0].(MemberLeft)
	if !ok {
		t.Fatalf("expected MemberLeft, got %T", events[0])
	}
	if left.Size != 1 {
		t.Fatalf("expected size 1, got %d", left.Size)
	}
	if _, member := org.Members["scale"]; member {
		t.Fatal("departed member must leave the roster")
	}
}

func TestStepRejections(t *testing.T) {
	cases := []struct {
		name   string
		input  Input
		reason RejectReason
	}{
		{
			name:   "unknown org",
			input:  Input{OrgID: "cabal", MemberID: "anvil", Op: OpJoin},
			reason: ReasonUnknownOrg,
		},
		{
			name:   "already member",
			input:  Input{OrgID: guildID, MemberID: "anvil", Op: OpJoin},
			reason: ReasonAlreadyMember,
		},
		{
			name:   "not member",
			input:  Input{OrgID: guildID, MemberID: "stranger", Op: OpLeave},
			reason: ReasonNotMember,
		},
		{
			name:   "unknown op",
			input:  Input{OrgID: guildID, MemberID: "anvil", Op: "promote"},
			reason: ReasonUnknownOp,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			st := NewState()
			org := st.AddOrg(guildID)
			org.Members["anvil"] = "smith"

			m := New(SizeFit{})
			var buf mechanic.Buffer[Event]
			m.Step(cfg, st, tc.input, &buf)

			events := buf.Drain()
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			rej, ok := events[0].(Rejected)
			if !ok {
				t.Fatalf("expected Rejected, got %T", events[0])
			}
			if rej.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, rej.Reason)
			}
		})
	}
}

func TestSizeFitPeaksAtOptimum(t *testing.T) {
	cfg := testConfig()
	org := &Org{Members: make(map[sim.MemberID]Role)}
	p := SizeFit{}

	var prev float64
	for i := 1; i <= cfg.OptimalSize; i++ {
		org.Members[sim.MemberID(fmt.Sprintf("m%d", i))] = "smith"
		score := p.Fit(org, cfg)
		if score <= prev {
			t.Fatalf("expected rising fit up to the optimum, got %v after %v", score, prev)
		}
		prev = score
	}
	if prev != 1 {
		t.Fatalf("expected peak fit 1 at the optimum, got %v", prev)
	}

	// Past twice the optimum the score floors at zero.
	for i := cfg.OptimalSize + 1; i <= cfg.OptimalSize*3; i++ {
		org.Members[sim.MemberID(fmt.Sprintf("m%d", i))] = "smith"
	}
	if got := p.Fit(org, cfg); got != 0 {
		t.Fatalf("expected floored fit 0, got %v", got)
	}
}

func TestRoleCoverageFit(t *testing.T) {
	cfg := testConfig()
	org := &Org{Members: map[sim.MemberID]Role{"anvil": "smith"}}
	p := RoleCoverageFit{}
	if got := p.Fit(org, cfg); got != 0.5 {
		t.Fatalf("expected coverage 0.5, got %v", got)
	}
	org.Members["scale"] = "trader"
	if got := p.Fit(org, cfg); got != 1 {
		t.Fatalf("expected coverage 1, got %v", got)
	}
}

func TestBlendedFit(t *testing.T) {
	cfg := testConfig()
	org := &Org{Members: map[sim.MemberID]Role{"anvil": "smith"}}
	// Size fit 0.25 and coverage 0.5 blend to 0.375.
	if got := (BlendedFit{}).Fit(org, cfg); math.Abs(got-0.375) > 1e-9 {
		t.Fatalf("expected blended fit 0.375, got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: *testConfig()},
		{name: "zero optimal size", cfg: Config{OptimalSize: 0, RequiredRoles: []Role{"smith"}}, wantErr: true},
		{name: "no roles", cfg: Config{OptimalSize: 4}, wantErr: true},
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
