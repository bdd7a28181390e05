// Package reputation implements the reputation mechanic: bounded standing
// scores adjusted through change, decay, and clamp policy slots.
package reputation

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidBounds indicates Min at or above Max.
	ErrInvalidBounds = apperrors.New(apperrors.CodeConfigValueOutOfRange, "reputation min must be below max")
	// ErrInvalidDecayRate indicates a negative decay rate.
	ErrInvalidDecayRate = apperrors.New(apperrors.CodeConfigValueOutOfRange, "decay rate must be non-negative")
)

// Config holds the read-only reputation parameters.
type Config struct {
	// Min and Max bound every standing score.
	Min float64
	Max float64
	// DecayRate is the standing fraction lost per elapsed tick under
	// proportional decay.
	DecayRate float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.Min >= c.Max {
		return ErrInvalidBounds
	}
	if c.DecayRate < 0 {
		return ErrInvalidDecayRate
	}
	return nil
}

// State holds every tracked standing.
type State struct {
	Standings map[sim.EntityID]float64
}

// NewState creates an empty reputation state.
func NewState() *State {
	return &State{Standings: make(map[sim.EntityID]float64)}
}

// Input is the command for one reputation step.
type Input struct {
	EntityID sim.EntityID
	Delta    float64
	Elapsed  sim.Duration
}

// Boundary tags which bound a clamp hit.
type Boundary string

const (
	// BoundaryUpper indicates the value was clamped at Max.
	BoundaryUpper Boundary = "upper"
	// BoundaryLower indicates the value was clamped at Min.
	BoundaryLower Boundary = "lower"
	// BoundaryNone indicates no clamping occurred.
	BoundaryNone Boundary = "none"
)

// RejectReason tags a declined adjustment.
type RejectReason string

// ReasonUnknownEntity indicates the entity id is not in state.
const ReasonUnknownEntity RejectReason = "unknown_entity"

// Event is the sealed union of reputation events.
type Event interface {
	Kind() string
	isEvent()
}

// Changed records a standing moving from Before to After.
type Changed struct {
	EntityID sim.EntityID `json:"entity_id"`
	Before   float64      `json:"before"`
	After    float64      `json:"after"`
}

// Kind returns the event kind tag.
func (Changed) Kind() string { return "changed" }
func (Changed) isEvent()     {}

// ThresholdCrossed records a standing hitting a configured bound.
type ThresholdCrossed struct {
	EntityID sim.EntityID `json:"entity_id"`
	Boundary Boundary     `json:"boundary"`
}

// Kind returns the event kind tag.
func (ThresholdCrossed) Kind() string { return "threshold_crossed" }
func (ThresholdCrossed) isEvent()     {}

// Rejected records a declined adjustment.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the reputation descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "reputation",
		Inputs: []string{"adjust"},
		Events: []string{Changed{}.Kind(), ThresholdCrossed{}.Kind(), Rejected{}.Kind()},
	}
}
