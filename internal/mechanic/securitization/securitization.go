// Package securitization implements the backed-issuance mechanic:
// collateral and issuance policy slots govern how entities deposit
// collateral, issue claims against it, and unwind positions.
package securitization

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidRatio indicates a collateral ratio below one.
	ErrInvalidRatio = apperrors.New(apperrors.CodeConfigValueOutOfRange, "collateral ratio must be at least 1")
	// ErrInvalidCap indicates a negative issuance cap.
	ErrInvalidCap = apperrors.New(apperrors.CodeConfigValueOutOfRange, "issuance cap must be non-negative")
)

// Config holds the read-only securitization parameters.
type Config struct {
	// CollateralRatio is the collateral required per unit issued.
	CollateralRatio decimal.Decimal
	// IssuanceCap bounds the total issued per position. Zero means
	// uncapped.
	IssuanceCap decimal.Decimal
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.CollateralRatio.LessThan(decimal.NewFromInt(1)) {
		return ErrInvalidRatio
	}
	if c.IssuanceCap.IsNegative() {
		return ErrInvalidCap
	}
	return nil
}

// Position is one entity's collateral and outstanding issuance.
type Position struct {
	Collateral decimal.Decimal
	Issued     decimal.Decimal
}

// State holds every position.
type State struct {
	Positions map[sim.EntityID]*Position
}

// NewState creates an empty securitization state.
func NewState() *State {
	return &State{Positions: make(map[sim.EntityID]*Position)}
}

// AddPosition registers an empty position.
func (s *State) AddPosition(id sim.EntityID) *Position {
	p := &Position{}
	s.Positions[id] = p
	return p
}

// Op selects the securitization operation for one step.
type Op string

const (
	// OpDeposit adds collateral to a position.
	OpDeposit Op = "deposit"
	// OpIssue mints claims against the position's collateral.
	OpIssue Op = "issue"
	// OpRedeem burns outstanding claims.
	OpRedeem Op = "redeem"
	// OpWithdraw releases collateral not backing claims.
	OpWithdraw Op = "withdraw"
)

// Input is the command for one securitization step.
type Input struct {
	EntityID sim.EntityID
	Op       Op
	Amount   decimal.Decimal
	Elapsed  sim.Duration
}

// RejectReason tags a declined operation.
type RejectReason string

const (
	// ReasonUnknownPosition indicates the entity has no position.
	ReasonUnknownPosition RejectReason = "unknown_position"
	// ReasonInvalidAmount indicates a non-positive amount.
	ReasonInvalidAmount RejectReason = "invalid_amount"
	// ReasonUnknownOp indicates an unrecognized operation.
	ReasonUnknownOp RejectReason = "unknown_op"
	// ReasonUndercollateralized indicates issuance past the collateral.
	ReasonUndercollateralized RejectReason = "undercollateralized"
	// ReasonOverCap indicates issuance past the configured cap.
	ReasonOverCap RejectReason = "over_cap"
	// ReasonExcessRedemption indicates redeeming more than outstanding.
	ReasonExcessRedemption RejectReason = "excess_redemption"
	// ReasonCollateralLocked indicates withdrawing collateral that backs
	// outstanding claims.
	ReasonCollateralLocked RejectReason = "collateral_locked"
)

// Event is the sealed union of securitization events.
type Event interface {
	Kind() string
	isEvent()
}

// CollateralDeposited records collateral entering a position.
type CollateralDeposited struct {
	EntityID   sim.EntityID    `json:"entity_id"`
	Amount     decimal.Decimal `json:"amount"`
	Collateral decimal.Decimal `json:"collateral"`
}

// Kind returns the event kind tag.
func (CollateralDeposited) Kind() string { return "collateral_deposited" }
func (CollateralDeposited) isEvent()     {}

// Issued records claims minted against a position.
type Issued struct {
	EntityID sim.EntityID    `json:"entity_id"`
	Amount   decimal.Decimal `json:"amount"`
	Issued   decimal.Decimal `json:"issued"`
}

// Kind returns the event kind tag.
func (Issued) Kind() string { return "issued" }
func (Issued) isEvent()     {}

// Redeemed records claims burned against a position.
type Redeemed struct {
	EntityID sim.EntityID    `json:"entity_id"`
	Amount   decimal.Decimal `json:"amount"`
	Issued   decimal.Decimal `json:"issued"`
}

// Kind returns the event kind tag.
func (Redeemed) Kind() string { return "redeemed" }
func (Redeemed) isEvent()     {}

// CollateralWithdrawn records collateral leaving a position.
type CollateralWithdrawn struct {
	EntityID   sim.EntityID    `json:"entity_id"`
	Amount     decimal.Decimal `json:"amount"`
	Collateral decimal.Decimal `json:"collateral"`
}

// Kind returns the event kind tag.
func (CollateralWithdrawn) Kind() string { return "collateral_withdrawn" }
func (CollateralWithdrawn) isEvent()     {}

// Rejected records a declined operation.
type Rejected struct {
	Reason RejectReason `json:"reason"`
}

// Kind returns the event kind tag.
func (Rejected) Kind() string { return "rejected" }
func (Rejected) isEvent()     {}

// Describe returns the securitization descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "securitization",
		Inputs: []string{"deposit", "issue", "redeem", "withdraw"},
		Events: []string{
			CollateralDeposited{}.Kind(), Issued{}.Kind(), Redeemed{}.Kind(),
			CollateralWithdrawn{}.Kind(), Rejected{}.Kind(),
		},
	}
}
