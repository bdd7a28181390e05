// Package evolution implements the adaptation mechanic: direction, rate,
// and environmental policy slots drift organism traits toward or away from
// the current environment and score the resulting fitness.
package evolution

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
	"github.com/louisbranch/emergent.world/internal/sim/rng"
)

var (
	// ErrInvalidTraitBound indicates a non-positive trait ceiling.
	ErrInvalidTraitBound = apperrors.New(apperrors.CodeConfigValueOutOfRange, "trait bound must be positive")
	// ErrInvalidStepSize indicates a non-positive drift step size.
	ErrInvalidStepSize = apperrors.New(apperrors.CodeConfigValueOutOfRange, "step size must be positive")
	// ErrInvalidExtinctionBar indicates an extinction bar outside [0, 1].
	ErrInvalidExtinctionBar = apperrors.New(apperrors.CodeConfigValueOutOfRange, "extinction bar must be within [0, 1]")
)

// Config holds the read-only evolution parameters.
type Config struct {
	// TraitBound caps every trait value, traits live in [0, TraitBound].
	TraitBound float64
	// StepSize is the base drift per unit of elapsed time.
	StepSize float64
	// ExtinctionBar is the fitness below which an organism dies out.
	// Zero disables extinction.
	ExtinctionBar float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.TraitBound <= 0 {
		return ErrInvalidTraitBound
	}
	if c.StepSize <= 0 {
		return ErrInvalidStepSize
	}
	if c.ExtinctionBar < 0 || c.ExtinctionBar > 1 {
		return ErrInvalidExtinctionBar
	}
	return nil
}

// Organism is one evolving population member.
type Organism struct {
	Traits  map[string]float64
	Fitness float64
}

// State holds every organism.
type State struct {
	Organisms map[sim.EntityID]*Organism
}

// NewState creates an empty evolution state.
func NewState() *State {
	return &State{Organisms: make(map[sim.EntityID]*Organism)}
}

// AddOrganism registers an organism with the given traits.
func (s *State) AddOrganism(id sim.EntityID, traits map[string]float64) *Organism {
	o := &Organism{Traits: traits}
	s.Organisms[id] = o
	return o
}

// Input is the command for one evolution step.
type Input struct {
	// Environment maps trait names to the value the environment favors.
	Environment map[string]float64
	Elapsed     sim.Duration
	Rand        *rng.Stream
}

// Event is the sealed union of evolution events.
type Event interface {
	Kind() string
	isEvent()
}

// TraitShifted records one trait drifting.
type TraitShifted struct {
	EntityID sim.EntityID `json:"entity_id"`
	Trait    string       `json:"trait"`
	Before   float64      `json:"before"`
	After    float64      `json:"after"`
}

// Kind returns the event kind tag.
func (TraitShifted) Kind() string { return "trait_shifted" }
func (TraitShifted) isEvent()     {}

// FitnessChanged records an organism's fitness moving after drift.
type FitnessChanged struct {
	EntityID sim.EntityID `json:"entity_id"`
	Before   float64      `json:"before"`
	After    float64      `json:"after"`
}

// Kind returns the event kind tag.
func (FitnessChanged) Kind() string { return "fitness_changed" }
func (FitnessChanged) isEvent()     {}

// Extinct records an organism falling below the extinction bar. The
// organism is removed from state.
type Extinct struct {
	EntityID sim.EntityID `json:"entity_id"`
}

// Kind returns the event kind tag.
func (Extinct) Kind() string { return "extinct" }
func (Extinct) isEvent()     {}

// Describe returns the evolution descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "evolution",
		Inputs: []string{"epoch"},
		Events: []string{
			TraitShifted{}.Kind(), FitnessChanged{}.Kind(), Extinct{}.Kind(),
		},
	}
}
