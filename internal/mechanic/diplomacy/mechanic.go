package diplomacy

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the diplomacy driver parameterized by its policy tuple.
type Mechanic[I InfluencePolicy, R ResistancePolicy, X ContextPolicy] struct {
	influence  I
	resistance R
	context    X
}

// New assembles a diplomacy mechanic from its policies.
func New[I InfluencePolicy, R ResistancePolicy, X ContextPolicy](influence I, resistance R, context X) Mechanic[I, R, X] {
	return Mechanic[I, R, X]{influence: influence, resistance: resistance, context: context}
}

// Step applies one argument. The influence pipeline runs influence, then
// resistance, then context. Shifts below the landing threshold dismiss the
// argument without touching the relation.
func (m Mechanic[I, R, X]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	rel, ok := st.Relation(in.ActorID, in.TargetID)
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownRelation})
		return
	}
	if in.Strength < 0 || in.Strength > 1 {
		em.Emit(Rejected{Reason: ReasonInvalidStrength})
		return
	}

	base := m.influence.Influence(in.Strength, in.Type, cfg)
	survived := m.resistance.Resist(base, rel.Resistance, cfg)
	shift := m.context.Contextualize(survived, in.Type, rel.Score, cfg)

	if shift <= cfg.LandingThreshold {
		em.Emit(ArgumentDismissed{ActorID: in.ActorID, TargetID: in.TargetID, Type: in.Type})
		return
	}
	if !in.Favorable {
		shift = -shift
	}

	before := rel.Score
	after := before + shift
	if after > 1 {
		after = 1
	} else if after < -1 {
		after = -1
	}
	rel.Score = after

	em.Emit(ArgumentLanded{
		ActorID:  in.ActorID,
		TargetID: in.TargetID,
		Type:     in.Type,
		Before:   before,
		After:    after,
	})
}
