package combat

import (
	"math"

	"github.com/louisbranch/emergent.world/internal/sim/rng"
)

// DamagePolicy computes raw damage from the attacker and defender profiles.
// Implementations must be monotonic in attacker strength.
type DamagePolicy interface {
	Damage(attacker, defender Combatant, cfg *Config) int
}

// ElementalPolicy amplifies raw damage by attack element.
type ElementalPolicy interface {
	Amplify(raw int, element Element, cfg *Config) int
}

// DefensePolicy mitigates amplified damage using the defender's defense.
type DefensePolicy interface {
	Mitigate(amplified, defense int, cfg *Config) int
}

// CriticalPolicy decides whether a hit is critical and by what multiplier.
type CriticalPolicy interface {
	Roll(rand *rng.Stream, cfg *Config) (multiplier float64, critical bool)
}

// LinearDamage deals the attacker's attack value unmodified.
type LinearDamage struct{}

// Damage returns the attacker's attack stat.
func (LinearDamage) Damage(attacker, _ Combatant, _ *Config) int {
	if attacker.Attack < 0 {
		return 0
	}
	return attacker.Attack
}

// ScaledDamage deals attack scaled by a constant factor, floored at zero.
type ScaledDamage struct {
	Factor float64
}

// Damage returns scaled attack.
func (p ScaledDamage) Damage(attacker, _ Combatant, _ *Config) int {
	scaled := float64(attacker.Attack) * p.Factor
	if scaled < 0 {
		return 0
	}
	return int(math.Floor(scaled))
}

// NeutralElement applies no elemental amplification.
type NeutralElement struct{}

// Amplify returns raw unchanged.
func (NeutralElement) Amplify(raw int, _ Element, _ *Config) int { return raw }

// TableElement amplifies using the config's per-element multiplier table.
type TableElement struct{}

// Amplify scales raw by the element's configured multiplier, defaulting to
// one when the element is absent from the table.
func (TableElement) Amplify(raw int, element Element, cfg *Config) int {
	mult, ok := cfg.ElementMultipliers[element]
	if !ok {
		return raw
	}
	return int(math.Floor(float64(raw) * mult))
}

// SubtractiveDefense removes defense from damage, floored at zero.
type SubtractiveDefense struct{}

// Mitigate returns amplified minus defense, never negative.
func (SubtractiveDefense) Mitigate(amplified, defense int, _ *Config) int {
	mitigated := amplified - defense
	if mitigated < 0 {
		return 0
	}
	return mitigated
}

// PercentageDefense reduces damage by defense/(defense+scale), a diminishing
// returns curve that never reaches full immunity.
type PercentageDefense struct {
	// Scale controls the curve's knee; larger values weaken defense.
	// Zero is treated as 100.
	Scale float64
}

// Mitigate applies the percentage reduction.
func (p PercentageDefense) Mitigate(amplified, defense int, _ *Config) int {
	if defense <= 0 {
		return amplified
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 100
	}
	reduction := float64(defense) / (float64(defense) + scale)
	return int(math.Floor(float64(amplified) * (1 - reduction)))
}

// NoCritical never rolls a critical hit.
type NoCritical struct{}

// Roll reports no critical.
func (NoCritical) Roll(_ *rng.Stream, _ *Config) (float64, bool) {
	return 1, false
}

// ChanceCritical rolls against the config's critical chance.
type ChanceCritical struct{}

// Roll draws once from the stream. A nil stream disables criticals.
func (ChanceCritical) Roll(rand *rng.Stream, cfg *Config) (float64, bool) {
	if rand == nil {
		return 1, false
	}
	if !rand.Chance(cfg.CritChance) {
		return 1, false
	}
	mult := cfg.CritMultiplier
	if mult < 1 {
		mult = 1
	}
	return mult, true
}
