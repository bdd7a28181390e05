package exchange

import (
	"github.com/shopspring/decimal"

	"github.com/louisbranch/emergent.world/internal/sim"
)

// ValuationPolicy prices an asset quantity.
type ValuationPolicy interface {
	// Value returns the settlement price, or ok=false when the asset
	// cannot be priced.
	Value(asset sim.AssetID, quantity int, cfg *Config) (price decimal.Decimal, ok bool)
}

// ExecutionPolicy decides whether a priced trade settles.
type ExecutionPolicy interface {
	// Decide inspects the counterparties and returns a rejection reason
	// when the trade must not settle.
	Decide(buyer, seller *Trader, in Input, price decimal.Decimal) (ok bool, reason RejectReason)
}

// TableValuation prices trades from the configured base values.
type TableValuation struct{}

// Value multiplies the configured base value by the quantity.
func (TableValuation) Value(asset sim.AssetID, quantity int, cfg *Config) (decimal.Decimal, bool) {
	base, ok := cfg.BaseValues[asset]
	if !ok {
		return decimal.Zero, false
	}
	return base.Mul(decimal.NewFromInt(int64(quantity))), true
}

// MarkupValuation prices from the base table with a fixed multiplier, for
// markets that tax or subsidize every trade uniformly.
type MarkupValuation struct {
	Factor decimal.Decimal
}

// Value multiplies the table price by the markup factor.
func (v MarkupValuation) Value(asset sim.AssetID, quantity int, cfg *Config) (decimal.Decimal, bool) {
	base, ok := TableValuation{}.Value(asset, quantity, cfg)
	if !ok {
		return decimal.Zero, false
	}
	return base.Mul(v.Factor), true
}

// StrictExecution rejects any trade the counterparties cannot fully cover.
type StrictExecution struct{}

// Decide requires the buyer to hold the full price and the seller the full
// quantity.
func (StrictExecution) Decide(buyer, seller *Trader, in Input, price decimal.Decimal) (bool, RejectReason) {
	if buyer.Balance.LessThan(price) {
		return false, ReasonInsufficientFunds
	}
	if seller.Holdings[in.AssetID] < in.Quantity {
		return false, ReasonInsufficientHoldings
	}
	return true, ""
}

// CreditExecution allows buyer balances to go negative down to a limit.
type CreditExecution struct {
	Limit decimal.Decimal
}

// Decide permits the trade while the post-trade balance stays above the
// negated credit limit.
func (e CreditExecution) Decide(buyer, seller *Trader, in Input, price decimal.Decimal) (bool, RejectReason) {
	if buyer.Balance.Sub(price).LessThan(e.Limit.Neg()) {
		return false, ReasonInsufficientFunds
	}
	if seller.Holdings[in.AssetID] < in.Quantity {
		return false, ReasonInsufficientHoldings
	}
	return true, ""
}
