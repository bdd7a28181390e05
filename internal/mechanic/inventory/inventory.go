// Package inventory implements the carrying mechanic: capacity, stacking,
// and cost policy slots govern what an entity can store and hold.
package inventory

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidSlotLimit indicates a non-positive slot limit.
	ErrInvalidSlotLimit = apperrors.New(apperrors.CodeConfigValueOutOfRange, "slot limit must be positive")
	// ErrInvalidStackLimit indicates a non-positive stack limit.
	ErrInvalidStackLimit = apperrors.New(apperrors.CodeConfigValueOutOfRange, "stack limit must be positive")
	// ErrInvalidCarryLimit indicates a non-positive carry limit.
	ErrInvalidCarryLimit = apperrors.New(apperrors.CodeConfigValueOutOfRange, "carry limit must be positive")
	// ErrNegativeWeight indicates a negative configured item weight.
	ErrNegativeWeight = apperrors.New(apperrors.CodeConfigValueOutOfRange, "item weight must be non-negative")
)

// Config holds the read-only inventory parameters.
type Config struct {
	// SlotLimit caps the number of distinct item stacks per entity.
	SlotLimit int
	// StackLimit caps the quantity held in one stack.
	StackLimit int
	// CarryLimit caps the total weight an entity can carry.
	CarryLimit float64
	// Weights assigns a carry weight per item unit.
	Weights map[sim.ItemID]float64
	// Rarities tiers items for rarity-aware stacking. Unlisted items
	// count as common.
	Rarities map[sim.ItemID]sim.Rarity
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.SlotLimit <= 0 {
		return ErrInvalidSlotLimit
	}
	if c.StackLimit <= 0 {
		return ErrInvalidStackLimit
	}
	if c.CarryLimit <= 0 {
		return ErrInvalidCarryLimit
	}
	for _, w := range c.Weights {
		if w < 0 {
			return ErrNegativeWeight
		}
	}
	return nil
}

// Pack is the per-entity inventory.
type Pack struct {
	Items map[sim.ItemID]int
}

// State holds every pack.
type State struct {
	Packs map[sim.EntityID]*Pack
}

// NewState creates an empty inventory state.
func NewState() *State {
	return &State{Packs: make(map[sim.EntityID]*Pack)}
}

// AddPack registers an empty pack for an entity.
func (s *State) AddPack(id sim.EntityID) *Pack {
	p := &Pack{Items: make(map[sim.ItemID]int)}
	s.Packs[id] = p
	return p
}

// Op selects the inventory operation for one step.
type Op string

const (
	// OpStore adds items to a pack.
	OpStore Op = "store"
	// OpRemove takes items out of a pack.
	OpRemove Op = "remove"
)

// Input is the command for one inventory step.
type Input struct {
	EntityID sim.EntityID
	ItemID   sim.ItemID
	Quantity int
	Op       Op
	Elapsed  sim.Duration
}

// RejectReason tags a declined inventory operation.
type RejectReason string

const (
	// ReasonUnknownEntity indicates the entity has no pack.
	ReasonUnknownEntity RejectReason = "unknown_entity"
	// ReasonInvalidQuantity indicates a non-positive quantity.
	ReasonInvalidQuantity RejectReason = "invalid_quantity"
	// ReasonUnknownOp indicates an unrecognized operation.
	ReasonUnknownOp RejectReason = "unknown_op"
	// ReasonOverCapacity indicates the capacity policy declined the store.
	ReasonOverCapacity RejectReason = "over_capacity"
	// ReasonStackLimit indicates the stack cannot grow further.
	ReasonStackLimit RejectReason = "stack_limit"
	// ReasonMissingItems indicates a removal of more than is held.
	ReasonMissingItems RejectReason = "missing_items"
)

// Event is the sealed union of inventory events.
type Event interface {
	Kind() string
	isEvent()
}

// Stored records items added to a pack.
type Stored struct {
	EntityID sim.EntityID `json:"entity_id"`
	ItemID   sim.ItemID   `json:"item_id"`
	Quantity int          `json:"quantity"`
	Held     int          `json:"held"`
}

// Kind returns the event kind tag.
func (Stored) Kind() string { return "stored" }
func (Stored) isEvent()     {}

// Removed records items taken out of a pack.
type Removed struct {
	EntityID sim.EntityID `json:"entity_id"`
	ItemID   sim.ItemID   `json:"item_id"`
	Quantity int          `json:"quantity"`
	Held     int          `json:"held"`
}

// Kind returns the event kind tag.
func (Removed) Kind() string { return "removed" }
func (Removed) isEvent()     {}

// Rejected records a declined inventory operation.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the inventory descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "inventory",
		Inputs: []string{"store", "remove"},
		Events: []string{Stored{}.Kind(), Removed{}.Kind(), Rejected{}.Kind()},
	}
}
