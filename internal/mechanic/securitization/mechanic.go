package securitization

import "github.com/louisbranch/emergent.world/internal/mechanic"

// Mechanic is the securitization driver parameterized by its policy tuple.
type Mechanic[C CollateralPolicy, I IssuancePolicy] struct {
	collateral C
	issuance   I
}

// New assembles a securitization mechanic from its policies.
func New[C CollateralPolicy, I IssuancePolicy](collateral C, issuance I) Mechanic[C, I] {
	return Mechanic[C, I]{collateral: collateral, issuance: issuance}
}

// Step applies one position operation. Declined operations emit Rejected
// and leave the position untouched. Every applied operation keeps the
// position fully collateralized.
func (m Mechanic[C, I]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event]) {
	pos, ok := st.Positions[in.EntityID]
	if !ok {
		em.Emit(Rejected{Reason: ReasonUnknownPosition})
		return
	}
	if !in.Amount.IsPositive() {
		em.Emit(Rejected{Reason: ReasonInvalidAmount})
		return
	}

	switch in.Op {
	case OpDeposit:
		pos.Collateral = pos.Collateral.Add(in.Amount)
		em.Emit(CollateralDeposited{EntityID: in.EntityID, Amount: in.Amount, Collateral: pos.Collateral})

	case OpIssue:
		if ok, reason := m.issuance.CanIssue(pos, in.Amount, m.collateral, cfg); !ok {
			em.Emit(Rejected{Reason: reason})
			return
		}
		pos.Issued = pos.Issued.Add(in.Amount)
		em.Emit(Issued{EntityID: in.EntityID, Amount: in.Amount, Issued: pos.Issued})

	case OpRedeem:
		if in.Amount.GreaterThan(pos.Issued) {
			em.Emit(Rejected{Reason: ReasonExcessRedemption})
			return
		}
		pos.Issued = pos.Issued.Sub(in.Amount)
		em.Emit(Redeemed{EntityID: in.EntityID, Amount: in.Amount, Issued: pos.Issued})

	case OpWithdraw:
		remaining := pos.Collateral.Sub(in.Amount)
		if remaining.LessThan(m.collateral.Required(pos.Issued, cfg)) {
			em.Emit(Rejected{Reason: ReasonCollateralLocked})
			return
		}
		pos.Collateral = remaining
		em.Emit(CollateralWithdrawn{EntityID: in.EntityID, Amount: in.Amount, Collateral: pos.Collateral})

	default:
		em.Emit(Rejected{Reason: ReasonUnknownOp})
	}
}
