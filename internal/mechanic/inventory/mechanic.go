package inventory

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the inventory driver parameterized by its policy tuple.
type Mechanic[C CapacityPolicy, S StackingPolicy, K CostPolicy] struct {
	capacity C
	stacking S
	cost     K
}

// New assembles an inventory mechanic from its policies.
func New[C CapacityPolicy, S StackingPolicy, K CostPolicy](capacity C, stacking S, cost K) Mechanic[C, S, K] {
	return Mechanic[C, S, K]{capacity: capacity, stacking: stacking, cost: cost}
}

// Step applies one store or remove operation. Declined operations emit
// Rejected and leave the pack untouched.
func (m Mechanic[C, S, K]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	pack, ok := st.Packs[in.EntityID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownEntity})
		return
	}
	if in.Quantity <= 0 {
		em.Emit(Rejected{Reason: ReasonInvalidQuantity})
		return
	}

	switch in.Op {
	case OpStore:
		m.store(cfg, pack, in, em)
	case OpRemove:
		m.remove(cfg, pack, in, em)
	default:
		em.Emit(Rejected{Reason: ReasonUnknownOp})
	}
}

func (m Mechanic[C, S, K]) store(cfg *Config, pack *Pack, in Input, em mechanic.Emitter[Event]) {
	if pack.Items[in.ItemID]+in.Quantity > m.stacking.Limit(in.ItemID, cfg) {
		em.Emit(Rejected{Reason: ReasonStackLimit})
		return
	}
	if !m.capacity.CanStore(pack, in.ItemID, in.Quantity, m.cost, cfg) {
		em.Emit(Rejected{Reason: ReasonOverCapacity})
		return
	}

	pack.Items[in.ItemID] += in.Quantity
	em.Emit(Stored{
		EntityID: in.EntityID,
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Held:     pack.Items[in.ItemID],
	})
}

func (m Mechanic[C, S, K]) remove(cfg *Config, pack *Pack, in Input, em mechanic.Emitter[Event]) {
	if pack.Items[in.ItemID] < in.Quantity {
		em.Emit(Rejected{Reason: ReasonMissingItems})
		return
	}

	pack.Items[in.ItemID] -= in.Quantity
	held := pack.Items[in.ItemID]
	if held == 0 {
		delete(pack.Items, in.ItemID)
	}
	em.Emit(Removed{
		EntityID: in.EntityID,
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Held:     held,
	})
}
