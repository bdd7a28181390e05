package evolution

import (
	"sort"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// Mechanic is the evolution driver parameterized by its policy tuple.
type Mechanic[D DirectionPolicy, R RatePolicy, E EnvironmentalPolicy] struct {
	direction   D
	rate        R
	environment E
}

// New assembles an evolution mechanic from its policies.
func New[D DirectionPolicy, R RatePolicy, E EnvironmentalPolicy](direction D, rate R, environment E) Mechanic[D, R, E] {
	return Mechanic[D, R, E]{direction: direction, rate: rate, environment: environment}
}

// Step drifts every organism's traits one epoch and rescores fitness.
// Organisms iterate in id order and traits in name order so the event
// stream and any rng draws are reproducible.
func (m Mechanic[D, R, E]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	ids := make([]sim.EntityID, 0, len(st.Organisms))
	for id := range st.Organisms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	elapsed := float64(in.Elapsed)
	for _, id := range ids {
		org := st.Organisms[id]

		traits := make([]string, 0, len(org.Traits))
		for trait := range org.Traits {
			traits = append(traits, trait)
		}
		sort.Strings(traits)

		for _, trait := range traits {
			before := org.Traits[trait]
			dir := m.direction.Direction(trait, before, in.Environment, in.Rand)
			if dir == 0 {
				continue
			}
			after := before + dir*m.rate.Rate(before, elapsed, cfg)
			if after < 0 {
				after = 0
			} else if after > cfg.TraitBound {
				after = cfg.TraitBound
			}
			if after == before {
				continue
			}
			org.Traits[trait] = after
			em.Emit(TraitShifted{EntityID: id, Trait: trait, Before: before, After: after})
		}

		fitness := m.environment.Fitness(org.Traits, in.Environment, cfg)
		if fitness != org.Fitness {
			em.Emit(FitnessChanged{EntityID: id, Before: org.Fitness, After: fitness})
			org.Fitness = fitness
		}

		if cfg.ExtinctionBar > 0 && org.Fitness < cfg.ExtinctionBar {
			delete(st.Organisms, id)
			em.Emit(Extinct{EntityID: id})
		}
	}
}
