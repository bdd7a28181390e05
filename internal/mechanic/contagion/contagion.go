// Package contagion implements the contagion mechanic over the propagation
// substrate: infections spread along weighted edges, progress on their
// hosts, and decay toward recovery.
package contagion

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/propagation"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidDecayRate indicates a negative decay rate.
	ErrInvalidDecayRate = apperrors.New(apperrors.CodeConfigValueOutOfRange, "decay rate must be non-negative")
	// ErrInvalidThreshold indicates a negative transmission threshold.
	ErrInvalidThreshold = apperrors.New(apperrors.CodeConfigValueOutOfRange, "transmission threshold must be non-negative")
	// ErrInvalidSchedule indicates an unknown schedule.
	ErrInvalidSchedule = apperrors.New(apperrors.CodeConfigInvalidSchedule, "schedule must be synchronous or asynchronous")
)

// Infection is the propagating payload: a strain at a severity.
type Infection struct {
	Severity float64 `json:"severity"`
	Strain   string  `json:"strain,omitempty"`
}

// Magnitude reports the infection severity.
func (i Infection) Magnitude() float64 { return i.Severity }

// Config holds the read-only contagion parameters.
type Config struct {
	// Schedule selects the propagation schedule. Empty defaults to
	// synchronous.
	Schedule propagation.Schedule
	// Reach bounds transmission distance; zero means unbounded.
	Reach float64
	// Threshold is the minimum spread strength that transmits.
	Threshold float64
	// DecayRate is severity lost per elapsed tick.
	DecayRate float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	switch c.Schedule {
	case "", propagation.Synchronous, propagation.Asynchronous:
	default:
		return ErrInvalidSchedule
	}
	if c.Threshold < 0 {
		return ErrInvalidThreshold
	}
	if c.DecayRate < 0 {
		return ErrInvalidDecayRate
	}
	return nil
}

// State wraps the shared topology the mechanic propagates over.
type State struct {
	Topo *propagation.Topology[Infection]
}

// NewState creates a state with an empty topology.
func NewState() *State {
	return &State{Topo: propagation.NewTopology[Infection]()}
}

// Input is the command for one contagion step.
type Input struct {
	Elapsed sim.Duration
}

// Event is the sealed union of contagion events.
type Event interface {
	Kind() string
	isEvent()
}

// Transmitted records an infection crossing an edge.
type Transmitted struct {
	Source    sim.NodeID `json:"source"`
	Target    sim.NodeID `json:"target"`
	Infection Infection  `json:"infection"`
}

// Kind returns the event kind tag.
func (Transmitted) Kind() string { return "transmitted" }
func (Transmitted) isEvent()     {}

// Progressed records a node's infection advancing after transmission.
type Progressed struct {
	Node     sim.NodeID   `json:"node"`
	Severity float64      `json:"severity"`
	Tier     sim.Severity `json:"tier"`
}

// Kind returns the event kind tag.
func (Progressed) Kind() string { return "progressed" }
func (Progressed) isEvent()     {}

// Waned records severity decaying without full recovery.
type Waned struct {
	Node     sim.NodeID   `json:"node"`
	Severity float64      `json:"severity"`
	Tier     sim.Severity `json:"tier"`
}

// Kind returns the event kind tag.
func (Waned) Kind() string { return "waned" }
func (Waned) isEvent()     {}

// Recovered records a node's severity reaching zero.
type Recovered struct {
	Node sim.NodeID `json:"node"`
}

// Kind returns the event kind tag.
func (Recovered) Kind() string { return "recovered" }
func (Recovered) isEvent()     {}

// Describe returns the contagion descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "contagion",
		Inputs: []string{"advance"},
		Events: []string{Transmitted{}.Kind(), Progressed{}.Kind(), Waned{}.Kind(), Recovered{}.Kind()},
	}
}
