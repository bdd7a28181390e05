package sim

import apperrors "github.com/louisbranch/emergent.world/internal/errors"

var (
	// ErrUnitIntervalRange indicates a ratio outside [0, 1].
	ErrUnitIntervalRange = apperrors.New(apperrors.CodeScalarOutOfRange, "ratio must be within [0, 1]")
	// ErrSignedUnitRange indicates a ratio outside [-1, 1].
	ErrSignedUnitRange = apperrors.New(apperrors.CodeScalarOutOfRange, "ratio must be within [-1, 1]")
)

// UnitInterval is a scalar ratio bounded to [0, 1]: probabilities, edge
// weights, decay rates.
type UnitInterval float64

// NewUnitInterval validates v against [0, 1].
func NewUnitInterval(v float64) (UnitInterval, error) {
	if v < 0 || v > 1 {
		return 0, ErrUnitIntervalRange
	}
	return UnitInterval(v), nil
}

// Float64 returns the underlying value.
func (u UnitInterval) Float64() float64 { return float64(u) }

// SignedUnit is a scalar ratio bounded to [-1, 1]: elasticities, relationship
// scores, drift directions.
type SignedUnit float64

// NewSignedUnit validates v against [-1, 1].
func NewSignedUnit(v float64) (SignedUnit, error) {
	if v < -1 || v > 1 {
		return 0, ErrSignedUnitRange
	}
	return SignedUnit(v), nil
}

// Float64 returns the underlying value.
func (s SignedUnit) Float64() float64 { return float64(s) }

// Clamp bounds v to [low, high].
func Clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// Clamp01 bounds v to the unit interval.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
