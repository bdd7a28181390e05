package securitization

import "github.com/shopspring/decimal"

// CollateralPolicy prices the collateral a level of issuance requires.
type CollateralPolicy interface {
	// Required returns the collateral that must back the given issuance.
	Required(issued decimal.Decimal, cfg *Config) decimal.Decimal
}

// IssuancePolicy decides whether a mint may proceed.
type IssuancePolicy interface {
	// CanIssue returns a rejection reason when the mint must not apply.
	// The collateral policy is consulted for the post-mint requirement.
	CanIssue(pos *Position, amount decimal.Decimal, collateral CollateralPolicy, cfg *Config) (ok bool, reason RejectReason)
}

// RatioCollateral requires the configured ratio of collateral per unit.
type RatioCollateral struct{}

// Required multiplies issuance by the collateral ratio.
func (RatioCollateral) Required(issued decimal.Decimal, cfg *Config) decimal.Decimal {
	return issued.Mul(cfg.CollateralRatio)
}

// SteppedCollateral requires the configured ratio plus a surcharge that
// grows with the issuance size, large positions carry a buffer.
type SteppedCollateral struct {
	// Step is the issuance size at which the surcharge doubles the
	// base requirement.
	Step decimal.Decimal
}

// Required returns ratio times issuance scaled up by issued over step.
func (c SteppedCollateral) Required(issued decimal.Decimal, cfg *Config) decimal.Decimal {
	base := issued.Mul(cfg.CollateralRatio)
	if c.Step.IsZero() {
		return base
	}
	surcharge := base.Mul(issued).Div(c.Step)
	return base.Add(surcharge)
}

// StrictIssuance enforces full collateralization and the issuance cap.
type StrictIssuance struct{}

// CanIssue rejects mints past the cap or past what collateral backs.
func (StrictIssuance) CanIssue(pos *Position, amount decimal.Decimal, collateral CollateralPolicy, cfg *Config) (bool, RejectReason) {
	after := pos.Issued.Add(amount)
	if !cfg.IssuanceCap.IsZero() && after.GreaterThan(cfg.IssuanceCap) {
		return false, ReasonOverCap
	}
	if collateral.Required(after, cfg).GreaterThan(pos.Collateral) {
		return false, ReasonUndercollateralized
	}
	return true, ""
}

// UncappedIssuance enforces collateralization only, no cap applies.
type UncappedIssuance struct{}

// CanIssue rejects only mints past what collateral backs.
func (UncappedIssuance) CanIssue(pos *Position, amount decimal.Decimal, collateral CollateralPolicy, cfg *Config) (bool, RejectReason) {
	after := pos.Issued.Add(amount)
	if collateral.Required(after, cfg).GreaterThan(pos.Collateral) {
		return false, ReasonUndercollateralized
	}
	return true, ""
}
