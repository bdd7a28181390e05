// Package diplomacy implements the persuasion mechanic: influence,
// resistance, and context policy slots shape how arguments move the
// relation score between factions.
package diplomacy

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidMultiplier indicates a negative argument multiplier.
	ErrInvalidMultiplier = apperrors.New(apperrors.CodeConfigValueOutOfRange, "argument multiplier must be non-negative")
	// ErrInvalidThreshold indicates a landing threshold outside [0, 1].
	ErrInvalidThreshold = apperrors.New(apperrors.CodeConfigValueOutOfRange, "landing threshold must be within [0, 1]")
)

// ArgumentType tags the rhetorical shape of an approach.
type ArgumentType string

const (
	// ArgumentAppeal invokes shared interest.
	ArgumentAppeal ArgumentType = "appeal"
	// ArgumentPromise offers something in exchange.
	ArgumentPromise ArgumentType = "promise"
	// ArgumentThreat leans on force.
	ArgumentThreat ArgumentType = "threat"
)

// Config holds the read-only diplomacy parameters.
type Config struct {
	// Multipliers scales influence per argument type. Absent types
	// default to 1.
	Multipliers map[ArgumentType]float64
	// LandingThreshold is the minimum effective shift for an argument
	// to land.
	LandingThreshold float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	for _, m := range c.Multipliers {
		if m < 0 {
			return ErrInvalidMultiplier
		}
	}
	if c.LandingThreshold < 0 || c.LandingThreshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// Relation is the directed stance of one faction toward another.
type Relation struct {
	// Score is the relation strength within [-1, 1].
	Score float64
	// Resistance dampens incoming arguments, within [0, 1].
	Resistance float64
}

// NewRelation validates the score and resistance ranges before
// constructing a stance.
func NewRelation(score, resistance float64) (Relation, error) {
	s, err := sim.NewSignedUnit(score)
	if err != nil {
		return Relation{}, err
	}
	r, err := sim.NewUnitInterval(resistance)
	if err != nil {
		return Relation{}, err
	}
	return Relation{Score: s.Float64(), Resistance: r.Float64()}, nil
}

// State holds relations keyed by actor then target.
type State struct {
	Relations map[sim.FactionID]map[sim.FactionID]*Relation
}

// NewState creates an empty diplomacy state.
func NewState() *State {
	return &State{Relations: make(map[sim.FactionID]map[sim.FactionID]*Relation)}
}

// AddRelation registers the target's stance toward the actor.
func (s *State) AddRelation(actor, target sim.FactionID, r Relation) *Relation {
	if s.Relations[actor] == nil {
		s.Relations[actor] = make(map[sim.FactionID]*Relation)
	}
	rp := &r
	s.Relations[actor][target] = rp
	return rp
}

// Relation looks up the target's stance toward the actor.
func (s *State) Relation(actor, target sim.FactionID) (*Relation, bool) {
	r, ok := s.Relations[actor][target]
	return r, ok
}

// Input is the command for one argument step.
type Input struct {
	ActorID  sim.FactionID
	TargetID sim.FactionID
	Type     ArgumentType
	// Strength is the raw force of the argument within [0, 1].
	Strength float64
	// Favorable flips the direction of the shift, true pushes the score
	// up and false pushes it down.
	Favorable bool
	Elapsed   sim.Duration
}

// RejectReason tags a declined argument.
type RejectReason string

const (
	// ReasonUnknownRelation indicates no stance exists between the pair.
	ReasonUnknownRelation RejectReason = "unknown_relation"
	// ReasonInvalidStrength indicates a strength outside [0, 1].
	ReasonInvalidStrength RejectReason = "invalid_strength"
)

// Event is the sealed union of diplomacy events.
type Event interface {
	Kind() string
	isEvent()
}

// ArgumentLanded records an argument that moved the relation.
type ArgumentLanded struct {
	ActorID  sim.FactionID `json:"actor_id"`
	TargetID sim.FactionID `json:"target_id"`
	Type     ArgumentType  `json:"type"`
	Before   float64       `json:"before"`
	After    float64       `json:"after"`
}

// Kind returns the event kind tag.
func (ArgumentLanded) Kind() string { return "argument_landed" }
func (ArgumentLanded) isEvent()     {}

// ArgumentDismissed records an argument that failed to move the relation.
type ArgumentDismissed struct {
	ActorID  sim.FactionID `json:"actor_id"`
	TargetID sim.FactionID `json:"target_id"`
	Type     ArgumentType  `json:"type"`
}

// Kind returns the event kind tag.
func (ArgumentDismissed) Kind() string { return "argument_dismissed" }
func (ArgumentDismissed) isEvent()     {}

// Rejected records a declined argument.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the diplomacy descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "diplomacy",
		Inputs: []string{"argue"},
		Events: []string{
			ArgumentLanded{}.Kind(), ArgumentDismissed{}.Kind(), Rejected{}.Kind(),
		},
	}
}
