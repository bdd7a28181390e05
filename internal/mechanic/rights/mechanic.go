package rights

import (
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// Mechanic is the rights driver parameterized by its policy tuple.
type Mechanic[T TransferPolicy, R RecognitionPolicy, S SystemPolicy] struct {
	transfer    T
	recognition R
	system      S
}

// New assembles a rights mechanic from its policies.
func New[T TransferPolicy, R RecognitionPolicy, S SystemPolicy](transfer T, recognition R, system S) Mechanic[T, R, S] {
	return Mechanic[T, R, S]{transfer: transfer, recognition: recognition, system: system}
}

// Step applies one claim transfer. Declined transfers emit Rejected and
// leave the claim untouched. Applied transfers emit Transferred followed by
// one Recognized per accepting observer and one Contested per disputing
// observer, in the caller's observer order.
func (m Mechanic[T, R, S]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	claim, ok := st.Claims[in.FactID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownClaim})
		return
	}

	if ok, reason := m.transfer.Allowed(*claim, in, cfg); !ok {
		em.Emit(Rejected{Reason: reason})
		return
	}

	claim.Holder = in.To
	em.Emit(Transferred{FactID: in.FactID, From: in.From, To: in.To})

	recognized := m.recognition.Recognize(*claim, in.Observers, cfg)
	accepted := make(map[sim.ObserverID]bool, len(recognized))
	for _, obs := range recognized {
		accepted[obs] = true
		em.Emit(Recognized{FactID: in.FactID, Observer: obs})
	}

	var unrecognized []sim.ObserverID
	for _, obs := range in.Observers {
		if !accepted[obs] {
			unrecognized = append(unrecognized, obs)
		}
	}
	for _, obs := range m.system.Contest(*claim, unrecognized, cfg) {
		em.Emit(Contested{FactID: in.FactID, Observer: obs})
	}
}
