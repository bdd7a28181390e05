package spatial

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the spatial driver parameterized by its policy tuple.
type Mechanic[T TopologyPolicy, D DistancePolicy] struct {
	topology T
	distance D
}

// New assembles a spatial mechanic from its policies.
func New[T TopologyPolicy, D DistancePolicy](topology T, distance D) Mechanic[T, D] {
	return Mechanic[T, D]{topology: topology, distance: distance}
}

// Step moves one entity toward its target, covering at most speed times
// elapsed ground. Reaching the target emits Arrived, partial progress
// emits Moved.
func (m Mechanic[T, D]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	from, ok := st.Positions[in.EntityID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownEntity})
		return
	}

	target := m.topology.Constrain(in.Target, cfg)
	total := m.distance.Distance(from, target, cfg)
	budget := cfg.Speed * float64(in.Elapsed)

	if total <= budget || total <= cfg.ArrivalEpsilon {
		st.Positions[in.EntityID] = target
		em.Emit(Arrived{EntityID: in.EntityID, At: target})
		return
	}

	frac := budget / total
	to := m.topology.Constrain(Position{
		X: from.X + (target.X-from.X)*frac,
		Y: from.Y + (target.Y-from.Y)*frac,
	}, cfg)
	if to == from {
		return
	}
	st.Positions[in.EntityID] = to
	em.Emit(Moved{EntityID: in.EntityID, From: from, To: to})
}
