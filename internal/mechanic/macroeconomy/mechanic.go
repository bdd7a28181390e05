package macroeconomy

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the macroeconomy driver parameterized by its policy.
type Mechanic[E EconomicPolicy] struct {
	economic E
}

// New assembles a macroeconomy mechanic from its policy.
func New[E EconomicPolicy](economic E) Mechanic[E] {
	return Mechanic[E]{economic: economic}
}

// Step folds one observation into the indicators and flags regime changes
// against the recession bar.
func (m Mechanic[E]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	before := st.Indicators
	after := m.economic.Aggregate(before, in.Observation, cfg)
	if after != before {
		st.Indicators = after
		em.Emit(IndicatorsUpdated{Before: before, After: after})
	}

	contracting := after.Output < cfg.RecessionBar
	if contracting == st.Contracting {
		return
	}
	st.Contracting = contracting
	if contracting {
		em.Emit(ContractionStarted{Output: after.Output})
	} else {
		em.Emit(ContractionEnded{Output: after.Output})
	}
}
