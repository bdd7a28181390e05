// Package perception implements the observation mechanic: accuracy and
// decay policy slots govern how sharply observers perceive targets and how
// impressions fade between sightings.
package perception

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidBaseAccuracy indicates a base accuracy outside [0, 1].
	ErrInvalidBaseAccuracy = apperrors.New(apperrors.CodeConfigValueOutOfRange, "base accuracy must be within [0, 1]")
	// ErrInvalidDecayRate indicates a negative decay rate.
	ErrInvalidDecayRate = apperrors.New(apperrors.CodeConfigValueOutOfRange, "decay rate must be non-negative")
	// ErrInvalidFalloff indicates a non-positive distance falloff.
	ErrInvalidFalloff = apperrors.New(apperrors.CodeConfigValueOutOfRange, "falloff must be positive")
)

// Config holds the read-only perception parameters.
type Config struct {
	// BaseAccuracy is the accuracy of a point-blank observation.
	BaseAccuracy float64
	// Falloff is the distance at which accuracy halves for distance
	// scaled policies.
	Falloff float64
	// DecayRate is the accuracy lost per unit of elapsed time.
	DecayRate float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.BaseAccuracy < 0 || c.BaseAccuracy > 1 {
		return ErrInvalidBaseAccuracy
	}
	if c.Falloff <= 0 {
		return ErrInvalidFalloff
	}
	if c.DecayRate < 0 {
		return ErrInvalidDecayRate
	}
	return nil
}

// Impression is what one observer currently knows of one target.
type Impression struct {
	Accuracy float64
}

// State holds impressions keyed by observer then target.
type State struct {
	Impressions map[sim.ObserverID]map[sim.TargetID]*Impression
}

// NewState creates an empty perception state.
func NewState() *State {
	return &State{Impressions: make(map[sim.ObserverID]map[sim.TargetID]*Impression)}
}

func (s *State) impression(obs sim.ObserverID, tgt sim.TargetID) (*Impression, bool) {
	imp, ok := s.Impressions[obs][tgt]
	return imp, ok
}

func (s *State) setImpression(obs sim.ObserverID, tgt sim.TargetID, imp *Impression) {
	if s.Impressions[obs] == nil {
		s.Impressions[obs] = make(map[sim.TargetID]*Impression)
	}
	s.Impressions[obs][tgt] = imp
}

// Input is the command for one perception step. A sighting refreshes the
// impression, a step without one only decays it.
type Input struct {
	ObserverID sim.ObserverID
	TargetID   sim.TargetID
	// Sighted reports whether the observer saw the target this step.
	Sighted bool
	// Distance is the ground between observer and target at sighting.
	Distance float64
	Elapsed  sim.Duration
}

// Event is the sealed union of perception events.
type Event interface {
	Kind() string
	isEvent()
}

// Observed records a sighting refreshing an impression.
type Observed struct {
	ObserverID sim.ObserverID `json:"observer_id"`
	TargetID   sim.TargetID   `json:"target_id"`
	Accuracy   float64        `json:"accuracy"`
}

// Kind returns the event kind tag.
func (Observed) Kind() string { return "observed" }
func (Observed) isEvent()     {}

// Faded records an impression losing accuracy between sightings.
type Faded struct {
	ObserverID sim.ObserverID `json:"observer_id"`
	TargetID   sim.TargetID   `json:"target_id"`
	Accuracy   float64        `json:"accuracy"`
}

// Kind returns the event kind tag.
func (Faded) Kind() string { return "faded" }
func (Faded) isEvent()     {}

// Forgotten records an impression decaying away entirely. The impression
// is removed from state.
type Forgotten struct {
	ObserverID sim.ObserverID `json:"observer_id"`
	TargetID   sim.TargetID   `json:"target_id"`
}

// Kind returns the event kind tag.
func (Forgotten) Kind() string { return "forgotten" }
func (Forgotten) isEvent()     {}

// Describe returns the perception descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "perception",
		Inputs: []string{"observe"},
		Events: []string{Observed{}.Kind(), Faded{}.Kind(), Forgotten{}.Kind()},
	}
}
