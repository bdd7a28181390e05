package exchange

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the exchange driver parameterized by its policy tuple.
type Mechanic[V ValuationPolicy, X ExecutionPolicy] struct {
	valuation V
	execution X
}

// New assembles an exchange mechanic from its policies.
func New[V ValuationPolicy, X ExecutionPolicy](valuation V, execution X) Mechanic[V, X] {
	return Mechanic[V, X]{valuation: valuation, execution: execution}
}

// Step prices and settles one trade. Declined trades emit TradeRejected and
// leave the state untouched.
func (m Mechanic[V, X]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	buyer, ok := st.Traders[in.BuyerID]
	if !ok {
		em.Emit(TradeRejected{Reason: ReasonUnknownBuyer})
		return
	}
	seller, ok := st.Traders[in.SellerID]
	if !ok {
		em.Emit(TradeRejected{Reason: ReasonUnknownSeller})
		return
	}
	if in.Quantity <= 0 {
		em.Emit(TradeRejected{Reason: ReasonInvalidQuantity})
		return
	}

	price, ok := m.valuation.Value(in.AssetID, in.Quantity, cfg)
	if !ok {
		em.Emit(TradeRejected{Reason: ReasonUnpricedAsset})
		return
	}

	if ok, reason := m.execution.Decide(buyer, seller, in, price); !ok {
		em.Emit(TradeRejected{Reason: reason})
		return
	}

	buyer.Balance = buyer.Balance.Sub(price)
	seller.Balance = seller.Balance.Add(price)
	seller.Holdings[in.AssetID] -= in.Quantity
	buyer.Holdings[in.AssetID] += in.Quantity

	em.Emit(TradeCompleted{
		BuyerID:  in.BuyerID,
		SellerID: in.SellerID,
		AssetID:  in.AssetID,
		Quantity: in.Quantity,
		Price:    price,
	})
}
