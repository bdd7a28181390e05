// Package exchange implements the trade mechanic: valuation and execution
// policy slots settle asset trades against decimal balances.
//
// Settlement is exact decimal arithmetic. When no external inflow is
// configured, the sum of balances and the per-asset holdings totals are
// conserved across every step.
package exchange

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// ErrNegativeBaseValue indicates a negative configured asset value.
var ErrNegativeBaseValue = apperrors.New(apperrors.CodeConfigValueOutOfRange, "asset base value must be non-negative")

// Config holds the read-only exchange parameters.
type Config struct {
	// BaseValues prices each asset for valuation policies.
	BaseValues map[sim.AssetID]decimal.Decimal
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	for _, value := range c.BaseValues {
		if value.IsNegative() {
			return ErrNegativeBaseValue
		}
	}
	return nil
}

// Trader is the per-entity exchange state.
type Trader struct {
	Balance  decimal.Decimal
	Holdings map[sim.AssetID]int
}

// State holds every trader.
type State struct {
	Traders map[sim.EntityID]*Trader
}

// NewState creates an empty exchange state.
func NewState() *State {
	return &State{Traders: make(map[sim.EntityID]*Trader)}
}

// AddTrader registers a trader with a starting balance.
func (s *State) AddTrader(id sim.EntityID, balance decimal.Decimal) *Trader {
	t := &Trader{Balance: balance, Holdings: make(map[sim.AssetID]int)}
	s.Traders[id] = t
	return t
}

// Input is the command for one exchange step: the buyer offers funds for the
// seller's asset quantity.
type Input struct {
	BuyerID  sim.EntityID
	SellerID sim.EntityID
	AssetID  sim.AssetID
	Quantity int
	Elapsed  sim.Duration
}

// RejectReason tags a declined trade.
type RejectReason string

const (
	// ReasonUnknownBuyer indicates the buyer id is not in state.
	ReasonUnknownBuyer RejectReason = "unknown_buyer"
	// ReasonUnknownSeller indicates the seller id is not in state.
	ReasonUnknownSeller RejectReason = "unknown_seller"
	// ReasonInvalidQuantity indicates a non-positive quantity.
	ReasonInvalidQuantity RejectReason = "invalid_quantity"
	// ReasonUnpricedAsset indicates the valuation produced no price.
	ReasonUnpricedAsset RejectReason = "unpriced_asset"
	// ReasonInsufficientFunds indicates the buyer cannot cover the price.
	ReasonInsufficientFunds RejectReason = "insufficient_funds"
	// ReasonInsufficientHoldings indicates the seller lacks the quantity.
	ReasonInsufficientHoldings RejectReason = "insufficient_holdings"
)

// Event is the sealed union of exchange events.
type Event interface {
	Kind() string
	isEvent()
}

// TradeCompleted records a settled trade.
type TradeCompleted struct {
	BuyerID  sim.EntityID    `json:"buyer_id"`
	SellerID sim.EntityID    `json:"seller_id"`
	AssetID  sim.AssetID     `json:"asset_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Kind returns the event kind tag.
func (TradeCompleted) Kind() string { return "trade_completed" }
func (TradeCompleted) isEvent()     {}

// TradeRejected records a declined trade.
type TradeRejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (TradeRejected) Kind() string { return "trade_rejected" }
func (TradeRejected) isEvent()     {}

// Describe returns the exchange descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "exchange",
		Inputs: []string{"trade"},
		Events: []string{TradeCompleted{}.Kind(), TradeRejected{}.Kind()},
	}
}
