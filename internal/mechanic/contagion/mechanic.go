package contagion

import (
	"math"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/propagation"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// SpreadPolicy is the contagion spread slot.
type SpreadPolicy = propagation.SpreadPolicy[Infection]

// MutationPolicy is the in-transit mutation slot.
type MutationPolicy = propagation.MutationPolicy[Infection]

// ProgressionPolicy is the host progression slot.
type ProgressionPolicy = propagation.ProgressionPolicy[Infection]

// DecayPolicy is the recovery slot.
type DecayPolicy = propagation.DecayPolicy[Infection]

// LinearDecay removes a fixed severity per elapsed tick, floored at zero.
type LinearDecay struct {
	Rate float64
}

// Decay applies the linear reduction.
func (p LinearDecay) Decay(inf Infection, elapsed sim.Duration) Infection {
	inf.Severity -= p.Rate * float64(elapsed)
	if inf.Severity < 0 {
		inf.Severity = 0
	}
	return inf
}

// ProportionalDecay removes a severity fraction per elapsed tick, clearing
// the infection once it falls below the floor.
type ProportionalDecay struct {
	// Rate is the severity fraction lost per tick, within [0, 1].
	Rate float64
	// Floor is the severity below which the infection clears.
	Floor float64
}

// Decay applies the fractional reduction.
func (p ProportionalDecay) Decay(inf Infection, elapsed sim.Duration) Infection {
	inf.Severity *= math.Pow(1-p.Rate, float64(elapsed))
	if inf.Severity < p.Floor {
		inf.Severity = 0
	}
	return inf
}

// AdditiveProgression stacks an incoming infection onto the host's current
// severity, reinfection compounds rather than replaces.
type AdditiveProgression struct {
	// Cap bounds the combined severity. Zero means uncapped.
	Cap float64
}

// Progress sums the severities and keeps the incoming strain tag.
func (p AdditiveProgression) Progress(current, incoming Infection) Infection {
	incoming.Severity += current.Severity
	if p.Cap > 0 && incoming.Severity > p.Cap {
		incoming.Severity = p.Cap
	}
	return incoming
}

// AttenuatingMutation weakens an infection in transit by a fixed fraction.
type AttenuatingMutation struct {
	// Loss is the severity fraction lost per hop, within [0, 1].
	Loss float64
}

// Mutate applies the attenuation.
func (p AttenuatingMutation) Mutate(inf Infection, _ float64) Infection {
	inf.Severity *= 1 - p.Loss
	if inf.Severity < 0 {
		inf.Severity = 0
	}
	return inf
}

// Mechanic is the contagion driver: a transmission pass followed by a decay
// pass, both over the state's topology.
type Mechanic[S SpreadPolicy, M MutationPolicy, G ProgressionPolicy, D DecayPolicy] struct {
	prop  propagation.Propagator[Infection, S, M, G]
	decay D
}

// New composes a contagion mechanic from its policies.
func New[S SpreadPolicy, M MutationPolicy, G ProgressionPolicy, D DecayPolicy](spread S, mutate M, progress G, decay D) Mechanic[S, M, G, D] {
	return Mechanic[S, M, G, D]{
		prop:  propagation.NewPropagator[Infection](spread, mutate, progress),
		decay: decay,
	}
}

// DefaultSpread returns the linear spread strategy at the config threshold.
func DefaultSpread(cfg *Config) propagation.LinearSpread[Infection] {
	return propagation.LinearSpread[Infection]{Threshold: cfg.Threshold}
}

// Step runs one contagion tick. Substrate events are mapped onto the
// contagion union: applications become Progressed, decays become Waned, and
// cleared slots become Recovered.
func (m Mechanic[S, M, G, D]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	if st.Topo == nil {
		return
	}
	mapped := &substrateMapper{em: em}
	m.prop.Transmit(st.Topo, cfg.Schedule, cfg.Reach, in.Elapsed, mapped)
	propagation.DecayPass(st.Topo, m.decay, in.Elapsed, mapped)
}

// substrateMapper translates substrate events into contagion events while
// preserving order.
type substrateMapper struct {
	em mechanic.Emitter[Event]
}

func (s *substrateMapper) Emit(evt propagation.Event) {
	switch e := evt.(type) {
	case propagation.Transmitted[Infection]:
		s.em.Emit(Transmitted{Source: e.Source, Target: e.Target, Infection: e.Payload})
	case propagation.Applied[Infection]:
		s.em.Emit(Progressed{Node: e.Target, Severity: e.Payload.Severity, Tier: sim.SeverityOf(e.Payload.Severity)})
	case propagation.Decayed:
		s.em.Emit(Waned{Node: e.Node, Severity: e.Remaining, Tier: sim.SeverityOf(e.Remaining)})
	case propagation.Cleared:
		s.em.Emit(Recovered{Node: e.Node})
	}
}
