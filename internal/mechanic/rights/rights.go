// Package rights implements the claims mechanic: transfer, recognition, and
// contest policy slots govern how held claims move between entities and how
// observers react when they do.
package rights

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// ErrInvalidWitnessCount indicates a negative witness requirement.
var ErrInvalidWitnessCount = apperrors.New(apperrors.CodeConfigValueOutOfRange, "witness count must be non-negative")

// Config holds the read-only rights parameters.
type Config struct {
	// Witnesses is the observer count required for recognition policies
	// that demand witnessing.
	Witnesses int
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.Witnesses < 0 {
		return ErrInvalidWitnessCount
	}
	return nil
}

// ClaimKind tags what a claim is over.
type ClaimKind string

const (
	// KindProperty is a claim over a thing.
	KindProperty ClaimKind = "property"
	// KindTitle is a claim over a role or office.
	KindTitle ClaimKind = "title"
	// KindTerritory is a claim over ground.
	KindTerritory ClaimKind = "territory"
)

// Claim is one held right.
type Claim struct {
	Holder       sim.EntityID
	Kind         ClaimKind
	Transferable bool
}

// State holds every claim.
type State struct {
	Claims map[sim.FactID]*Claim
}

// NewState creates an empty rights state.
func NewState() *State {
	return &State{Claims: make(map[sim.FactID]*Claim)}
}

// AddClaim registers a claim.
func (s *State) AddClaim(id sim.FactID, c Claim) {
	cp := c
	s.Claims[id] = &cp
}

// Input is the command for one transfer step.
type Input struct {
	FactID    sim.FactID
	From      sim.EntityID
	To        sim.EntityID
	Observers []sim.ObserverID
	Elapsed   sim.Duration
}

// RejectReason tags a declined transfer.
type RejectReason string

const (
	// ReasonUnknownClaim indicates the claim id is not in state.
	ReasonUnknownClaim RejectReason = "unknown_claim"
	// ReasonNotHolder indicates the transferor does not hold the claim.
	ReasonNotHolder RejectReason = "not_holder"
	// ReasonNonTransferable indicates the claim cannot change hands.
	ReasonNonTransferable RejectReason = "non_transferable"
	// ReasonSelfTransfer indicates the claim already rests with the target.
	ReasonSelfTransfer RejectReason = "self_transfer"
)

// Event is the sealed union of rights events.
type Event interface {
	Kind() string
	isEvent()
}

// Transferred records a claim changing hands.
type Transferred struct {
	FactID sim.FactID   `json:"fact_id"`
	From   sim.EntityID `json:"from"`
	To     sim.EntityID `json:"to"`
}

// Kind returns the event kind tag.
func (Transferred) Kind() string { return "transferred" }
func (Transferred) isEvent()     {}

// Recognized records an observer accepting a transfer.
type Recognized struct {
	FactID   sim.FactID     `json:"fact_id"`
	Observer sim.ObserverID `json:"observer"`
}

// Kind returns the event kind tag.
func (Recognized) Kind() string { return "recognized" }
func (Recognized) isEvent()     {}

// Contested records an observer disputing a transfer.
type Contested struct {
	FactID   sim.FactID     `json:"fact_id"`
	Observer sim.ObserverID `json:"observer"`
}

// Kind returns the event kind tag.
func (Contested) Kind() string { return "contested" }
func (Contested) isEvent()     {}

// Rejected records a declined transfer.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the rights descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "rights",
		Inputs: []string{"transfer"},
		Events: []string{
			Transferred{}.Kind(), Recognized{}.Kind(),
			Contested{}.Kind(), Rejected{}.Kind(),
		},
	}
}
