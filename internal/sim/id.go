package sim

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/platform/id"
)

// ErrIdentifierEmpty indicates an empty identifier where one is required.
var ErrIdentifierEmpty = apperrors.New(apperrors.CodeIdentifierEmpty, "identifier is required")

// EntityID identifies a simulated entity (combatant, trader, claimant).
type EntityID string

// MemberID identifies a member within an organization.
type MemberID string

// FactionID identifies a faction in diplomacy and reputation mechanics.
type FactionID string

// ObserverID identifies a perceiving party.
type ObserverID string

// TargetID identifies the target of an observation or argument.
type TargetID string

// NodeID identifies a node in a propagation topology.
type NodeID string

// EdgeID identifies an edge in a propagation topology.
type EdgeID string

// AssetID identifies a tradeable or securitizable asset.
type AssetID string

// ItemID identifies an inventory item kind.
type ItemID string

// FactID identifies a transferable claim or recognized fact.
type FactID string

// NewEntityID generates a fresh entity identifier.
func NewEntityID() (EntityID, error) {
	v, err := id.NewID()
	return EntityID(v), err
}

// NewNodeID generates a fresh node identifier.
func NewNodeID() (NodeID, error) {
	v, err := id.NewID()
	return NodeID(v), err
}

// NewAssetID generates a fresh asset identifier.
func NewAssetID() (AssetID, error) {
	v, err := id.NewID()
	return AssetID(v), err
}
