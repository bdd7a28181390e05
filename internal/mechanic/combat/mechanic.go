package combat

import (
	"math"

	"github.com/louisbranch/emergent.world/internal/mechanic"
)

// Mechanic is the combat driver, parameterized over its policy slots.
// Policies are invoked in a fixed order: damage, elemental, defense,
// critical.
type Mechanic[D DamagePolicy, E ElementalPolicy, F DefensePolicy, C CriticalPolicy] struct {
	damage    D
	elemental E
	defense   F
	critical  C
}

// New composes a combat mechanic from its policies.
func New[D DamagePolicy, E ElementalPolicy, F DefensePolicy, C CriticalPolicy](damage D, elemental E, defense F, critical C) Mechanic[D, E, F, C] {
	return Mechanic[D, E, F, C]{damage: damage, elemental: elemental, defense: defense, critical: critical}
}

// Step resolves one attack. Declined attacks emit a Rejected event and leave
// state unchanged. Damage applied is capped at the defender's remaining HP;
// a defender reaching zero also yields a Defeated event.
func (m Mechanic[D, E, F, C]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	attacker, ok := st.Combatants[in.AttackerID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownAttacker})
		return
	}
	defender, ok := st.Combatants[in.DefenderID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownDefender})
		return
	}
	if defender.HP <= 0 {
		em.Emit(Rejected{Reason: ReasonDefenderDefeated})
		return
	}

	raw := m.damage.Damage(*attacker, *defender, cfg)
	amplified := m.elemental.Amplify(raw, in.Element, cfg)
	mitigated := m.defense.Mitigate(amplified, defender.Defense, cfg)

	mult, critical := m.critical.Roll(in.Rand, cfg)
	final := mitigated
	if critical {
		final = int(math.Floor(float64(mitigated) * mult))
	}
	if final < 0 {
		final = 0
	}
	if final > defender.HP {
		final = defender.HP
	}

	defender.HP -= final
	em.Emit(DamageDealt{
		AttackerID: in.AttackerID,
		DefenderID: in.DefenderID,
		Amount:     final,
		Element:    in.Element,
		Critical:   critical,
	})
	if defender.HP == 0 {
		em.Emit(Defeated{EntityID: in.DefenderID})
	}
}
