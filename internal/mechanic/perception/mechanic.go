package perception

import "github.com/louisbranch/emergent.world/internal/mechanic"

// forgetFloor is the accuracy below which an impression is dropped.
const forgetFloor = 1e-3

// Mechanic is the perception driver parameterized by its policy tuple.
type Mechanic[A AccuracyPolicy, D DecayPolicy] struct {
	accuracy A
	decay    D
}

// New assembles a perception mechanic from its policies.
func New[A AccuracyPolicy, D DecayPolicy](accuracy A, decay D) Mechanic[A, D] {
	return Mechanic[A, D]{accuracy: accuracy, decay: decay}
}

// Step advances one observer-target impression. A sighting refreshes the
// impression at the policy accuracy when that improves on what remains, a
// step without one decays it. Impressions decaying under the forget floor
// are dropped.
func (m Mechanic[A, D]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	imp, known := st.impression(in.ObserverID, in.TargetID)

	if in.Sighted {
		fresh := m.accuracy.Accuracy(in.Distance, cfg)
		if !known {
			imp = &Impression{}
			st.setImpression(in.ObserverID, in.TargetID, imp)
		}
		if fresh > imp.Accuracy {
			imp.Accuracy = fresh
		}
		em.Emit(Observed{ObserverID: in.ObserverID, TargetID: in.TargetID, Accuracy: imp.Accuracy})
		return
	}

	if !known {
		return
	}

	remaining := m.decay.Decay(imp.Accuracy, float64(in.Elapsed), cfg)
	if remaining <= forgetFloor {
		delete(st.Impressions[in.ObserverID], in.TargetID)
		em.Emit(Forgotten{ObserverID: in.ObserverID, TargetID: in.TargetID})
		return
	}
	if remaining != imp.Accuracy {
		imp.Accuracy = remaining
		em.Emit(Faded{ObserverID: in.ObserverID, TargetID: in.TargetID, Accuracy: remaining})
	}
}
