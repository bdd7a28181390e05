// Package spatial implements the movement mechanic: topology and distance
// policy slots govern how entities move across the arena plane.
package spatial

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidSpeed indicates a non-positive movement speed.
	ErrInvalidSpeed = apperrors.New(apperrors.CodeConfigValueOutOfRange, "speed must be positive")
	// ErrInvalidCellSize indicates a non-positive grid cell size.
	ErrInvalidCellSize = apperrors.New(apperrors.CodeConfigValueOutOfRange, "cell size must be positive")
)

// Config holds the read-only spatial parameters.
type Config struct {
	// Speed is the distance an entity covers per unit of elapsed time.
	Speed float64
	// CellSize is the grid resolution for snapped topologies.
	CellSize float64
	// ArrivalEpsilon is the distance under which a mover counts as
	// arrived. Zero means exact arrival only.
	ArrivalEpsilon float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.Speed <= 0 {
		return ErrInvalidSpeed
	}
	if c.CellSize <= 0 {
		return ErrInvalidCellSize
	}
	return nil
}

// Position is a point on the arena plane.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State holds every entity position.
type State struct {
	Positions map[sim.EntityID]Position
}

// NewState creates an empty spatial state.
func NewState() *State {
	return &State{Positions: make(map[sim.EntityID]Position)}
}

// Place registers an entity at a position.
func (s *State) Place(id sim.EntityID, p Position) {
	s.Positions[id] = p
}

// Input is the command for one movement step.
type Input struct {
	EntityID sim.EntityID
	Target   Position
	Elapsed  sim.Duration
}

// RejectReason tags a declined movement.
type RejectReason string

// ReasonUnknownEntity indicates the entity has no position.
const ReasonUnknownEntity RejectReason = "unknown_entity"

// Event is the sealed union of spatial events.
type Event interface {
	Kind() string
	isEvent()
}

// Moved records an entity covering ground toward its target.
type Moved struct {
	EntityID sim.EntityID `json:"entity_id"`
	From     Position     `json:"from"`
	To       Position     `json:"to"`
}

// Kind returns the event kind tag.
func (Moved) Kind() string { return "moved" }
func (Moved) isEvent()     {}

// Arrived records an entity reaching its target.
type Arrived struct {
	EntityID sim.EntityID `json:"entity_id"`
	At       Position     `json:"at"`
}

// Kind returns the event kind tag.
func (Arrived) Kind() string { return "arrived" }
func (Arrived) isEvent()     {}

// Rejected records a declined movement.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the spatial descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "spatial",
		Inputs: []string{"move"},
		Events: []string{Moved{}.Kind(), Arrived{}.Kind(), Rejected{}.Kind()},
	}
}
