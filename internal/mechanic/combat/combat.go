// Package combat implements the combat mechanic: damage calculation scoped
// by damage, elemental, defense, and critical policy slots.
package combat

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
	"github.com/louisbranch/emergent.world/internal/sim/rng"
)

// Element classifies an attack for elemental amplification.
type Element string

const (
	// ElementNone carries no elemental affinity.
	ElementNone Element = "none"
	// ElementFire burns.
	ElementFire Element = "fire"
	// ElementFrost chills.
	ElementFrost Element = "frost"
	// ElementShock stuns.
	ElementShock Element = "shock"
	// ElementVenom poisons.
	ElementVenom Element = "venom"
)

var (
	// ErrInvalidMultiplier indicates a negative elemental multiplier.
	ErrInvalidMultiplier = apperrors.New(apperrors.CodeConfigValueOutOfRange, "elemental multiplier must be non-negative")
	// ErrInvalidCritChance indicates a critical chance outside [0, 1].
	ErrInvalidCritChance = apperrors.New(apperrors.CodeConfigValueOutOfRange, "critical chance must be within [0, 1]")
	// ErrInvalidCritMultiplier indicates a critical multiplier below one.
	ErrInvalidCritMultiplier = apperrors.New(apperrors.CodeConfigValueOutOfRange, "critical multiplier must be at least one")
)

// Config holds the read-only combat parameters.
type Config struct {
	// ElementMultipliers scales amplified damage per element. Missing
	// elements default to a multiplier of one.
	ElementMultipliers map[Element]float64
	// CritChance is the probability a hit is critical.
	CritChance float64
	// CritMultiplier scales critical damage. Must be at least one.
	CritMultiplier float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	for _, mult := range c.ElementMultipliers {
		if mult < 0 {
			return ErrInvalidMultiplier
		}
	}
	if c.CritChance < 0 || c.CritChance > 1 {
		return ErrInvalidCritChance
	}
	if c.CritMultiplier != 0 && c.CritMultiplier < 1 {
		return ErrInvalidCritMultiplier
	}
	return nil
}

// Combatant is the per-entity combat state.
type Combatant struct {
	HP      int
	MaxHP   int
	Attack  int
	Defense int
}

// State holds all combatants.
type State struct {
	Combatants map[sim.EntityID]*Combatant
}

// NewState creates an empty combat state.
func NewState() *State {
	return &State{Combatants: make(map[sim.EntityID]*Combatant)}
}

// Input is the command for one combat step: one attack.
type Input struct {
	AttackerID sim.EntityID
	DefenderID sim.EntityID
	Element    Element
	Elapsed    sim.Duration
	// Rand is the seeded stream the critical policy draws from. A nil
	// stream disables criticals for the step.
	Rand *rng.Stream
}

// RejectReason tags a declined attack.
type RejectReason string

const (
	// ReasonUnknownAttacker indicates the attacker id is not in state.
	ReasonUnknownAttacker RejectReason = "unknown_attacker"
	// ReasonUnknownDefender indicates the defender id is not in state.
	ReasonUnknownDefender RejectReason = "unknown_defender"
	// ReasonDefenderDefeated indicates the defender was already at zero HP.
	ReasonDefenderDefeated RejectReason = "defender_defeated"
)

// Event is the sealed union of combat events.
type Event interface {
	Kind() string
	isEvent()
}

// DamageDealt records damage applied to a defender.
type DamageDealt struct {
	AttackerID sim.EntityID `json:"attacker_id"`
	DefenderID sim.EntityID `json:"defender_id"`
	Amount     int          `json:"amount"`
	Element    Element      `json:"element"`
	Critical   bool         `json:"critical"`
}

// Kind returns the event kind tag.
func (DamageDealt) Kind() string { return "damage_dealt" }
func (DamageDealt) isEvent()     {}

// Defeated records a combatant reaching zero HP.
type Defeated struct {
	EntityID sim.EntityID `json:"entity_id"`
}

// Kind returns the event kind tag.
func (Defeated) Kind() string { return "defeated" }
func (Defeated) isEvent()     {}

// Rejected records a declined attack.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the combat descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "combat",
		Inputs: []string{"attack"},
		Events: []string{DamageDealt{}.Kind(), Defeated{}.Kind(), Rejected{}.Kind()},
	}
}
