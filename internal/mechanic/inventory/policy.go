package inventory

import "github.com/louisbranch/emergent.world/internal/sim"

// CapacityPolicy decides whether a pack can absorb more items.
type CapacityPolicy interface {
	// CanStore inspects the pack after a hypothetical store of the given
	// quantity and reports whether capacity allows it.
	CanStore(pack *Pack, item sim.ItemID, quantity int, cost CostPolicy, cfg *Config) bool
}

// StackingPolicy caps how many of an item share one stack.
type StackingPolicy interface {
	// Limit returns the stack ceiling for an item.
	Limit(item sim.ItemID, cfg *Config) int
}

// CostPolicy assigns the carry cost of holding items.
type CostPolicy interface {
	// Cost returns the weight contribution of a quantity of an item.
	Cost(item sim.ItemID, quantity int, cfg *Config) float64
}

// SlotCapacity bounds the number of distinct stacks in a pack.
type SlotCapacity struct{}

// CanStore allows the store while the distinct stack count stays within the
// configured slot limit.
func (SlotCapacity) CanStore(pack *Pack, item sim.ItemID, quantity int, cost CostPolicy, cfg *Config) bool {
	if _, held := pack.Items[item]; held {
		return true
	}
	return len(pack.Items) < cfg.SlotLimit
}

// WeightCapacity bounds the total carry weight of a pack.
type WeightCapacity struct{}

// CanStore allows the store while the pack weight, including the incoming
// items, stays within the configured carry limit.
func (WeightCapacity) CanStore(pack *Pack, item sim.ItemID, quantity int, cost CostPolicy, cfg *Config) bool {
	load := cost.Cost(item, quantity, cfg)
	for held, qty := range pack.Items {
		load += cost.Cost(held, qty, cfg)
	}
	return load <= cfg.CarryLimit
}

// UniformStacking applies the configured stack limit to every item.
type UniformStacking struct{}

// Limit returns the configured stack limit.
func (UniformStacking) Limit(item sim.ItemID, cfg *Config) int { return cfg.StackLimit }

// SingleStacking forbids stacking entirely, one item per stack.
type SingleStacking struct{}

// Limit returns one.
func (SingleStacking) Limit(item sim.ItemID, cfg *Config) int { return 1 }

// RarityStacking halves the stack ceiling per rarity tier, so rarer items
// stack less. The limit never drops below one.
type RarityStacking struct{}

// Limit derives the ceiling from the item's configured rarity.
func (RarityStacking) Limit(item sim.ItemID, cfg *Config) int {
	limit := cfg.StackLimit >> int(cfg.Rarities[item])
	if limit < 1 {
		return 1
	}
	return limit
}

// WeightCost prices carry load from the configured per-item weights.
type WeightCost struct{}

// Cost multiplies the configured item weight by the quantity. Items without
// a configured weight are weightless.
func (WeightCost) Cost(item sim.ItemID, quantity int, cfg *Config) float64 {
	return cfg.Weights[item] * float64(quantity)
}

// FlatCost prices every item unit identically.
type FlatCost struct {
	PerItem float64
}

// Cost multiplies the flat per-item cost by the quantity.
func (c FlatCost) Cost(item sim.ItemID, quantity int, cfg *Config) float64 {
	return c.PerItem * float64(quantity)
}
