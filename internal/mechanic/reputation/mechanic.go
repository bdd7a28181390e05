package reputation

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the reputation driver, parameterized over its policy slots.
// Policies are invoked in a fixed order: change, decay, clamp.
type Mechanic[C ChangePolicy, D DecayPolicy, L ClampPolicy] struct {
	change C
	decay  D
	clamp  L
}

// New composes a reputation mechanic from its policies.
func New[C ChangePolicy, D DecayPolicy, L ClampPolicy](change C, decay D, clamp L) Mechanic[C, D, L] {
	return Mechanic[C, D, L]{change: change, decay: decay, clamp: clamp}
}

// Step adjusts one standing. Unknown entities yield a Rejected event. A
// standing that moves emits Changed; hitting a bound additionally emits
// ThresholdCrossed.
func (m Mechanic[C, D, L]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	current, ok := st.Standings[in.EntityID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownEntity})
		return
	}

	shaped := m.change.Change(in.Delta, current, cfg)
	lost := m.decay.Decay(current, in.Elapsed, cfg)
	raw := current + shaped - lost
	final, boundary := m.clamp.Clamp(raw, cfg)

	st.Standings[in.EntityID] = final
	if final != current {
		em.Emit(Changed{EntityID: in.EntityID, Before: current, After: final})
	}
	if boundary != BoundaryNone {
		em.Emit(ThresholdCrossed{EntityID: in.EntityID, Boundary: boundary})
	}
}
