package propagation

import (
	"math"

	"github.com/louisbranch/emergent.world/internal/sim"
)

// SpreadPolicy decides whether a payload crosses an edge and at what
// strength. Implementations must be pure and monotonic in edge weight.
type SpreadPolicy[P Payload] interface {
	Spread(source P, weight, distance float64, elapsed sim.Duration) (strength float64, ok bool)
}

// MutationPolicy may alter a payload in transit.
type MutationPolicy[P Payload] interface {
	Mutate(payload P, strength float64) P
}

// ProgressionPolicy writes an incoming payload into a target's content slot,
// given the slot's current content.
type ProgressionPolicy[P Payload] interface {
	Progress(current, incoming P) P
}

// DecayPolicy reduces a payload's magnitude over elapsed time.
type DecayPolicy[P Payload] interface {
	Decay(payload P, elapsed sim.Duration) P
}

// LinearSpread transmits when magnitude times weight meets a threshold.
type LinearSpread[P Payload] struct {
	// Threshold is the minimum strength that transmits.
	Threshold float64
}

// Spread returns magnitude scaled by weight.
func (p LinearSpread[P]) Spread(source P, weight, _ float64, _ sim.Duration) (float64, bool) {
	strength := source.Magnitude() * weight
	return strength, strength >= p.Threshold
}

// ExponentialSpread attenuates strength exponentially with distance before
// applying the threshold. Longer edges transmit less.
type ExponentialSpread[P Payload] struct {
	// Lambda is the attenuation rate per distance unit.
	Lambda float64
	// Threshold is the minimum attenuated strength that transmits.
	Threshold float64
}

// Spread returns the distance-attenuated strength.
func (p ExponentialSpread[P]) Spread(source P, weight, distance float64, _ sim.Duration) (float64, bool) {
	strength := source.Magnitude() * weight * math.Exp(-p.Lambda*distance)
	return strength, strength >= p.Threshold
}

// IdentityMutation carries the payload unchanged.
type IdentityMutation[P Payload] struct{}

// Mutate returns the payload as-is.
func (IdentityMutation[P]) Mutate(payload P, _ float64) P { return payload }

// StrongerProgression keeps whichever payload has the larger magnitude.
type StrongerProgression[P Payload] struct{}

// Progress prefers the incoming payload only when it is strictly stronger.
func (StrongerProgression[P]) Progress(current, incoming P) P {
	if incoming.Magnitude() > current.Magnitude() {
		return incoming
	}
	return current
}

// ReplacingProgression always adopts the incoming payload. The newest
// arrival owns the slot regardless of its strength.
type ReplacingProgression[P Payload] struct{}

// Progress returns the incoming payload.
func (ReplacingProgression[P]) Progress(current, incoming P) P { return incoming }
