package reputation

import "github.com/louisbranch/emergent.world/internal/sim"

// ChangePolicy shapes a requested delta given the current standing.
type ChangePolicy interface {
	Change(delta, current float64, cfg *Config) float64
}

// DecayPolicy returns the standing amount lost over elapsed time.
type DecayPolicy interface {
	Decay(current float64, elapsed sim.Duration, cfg *Config) float64
}

// ClampPolicy bounds the resulting standing and reports which bound it hit.
type ClampPolicy interface {
	Clamp(value float64, cfg *Config) (float64, Boundary)
}

// LinearChange applies the delta unmodified.
type LinearChange struct{}

// Change returns delta as-is.
func (LinearChange) Change(delta, _ float64, _ *Config) float64 { return delta }

// DiminishingChange shrinks gains as the standing approaches Max and losses
// as it approaches Min, so extremes are hard to reach.
type DiminishingChange struct{}

// Change scales the delta by the remaining headroom toward the bound it
// moves against.
func (DiminishingChange) Change(delta, current float64, cfg *Config) float64 {
	span := cfg.Max - cfg.Min
	if span <= 0 {
		return delta
	}
	if delta > 0 {
		return delta * (cfg.Max - current) / span
	}
	return delta * (current - cfg.Min) / span
}

// NoDecay never decays.
type NoDecay struct{}

// Decay returns zero.
func (NoDecay) Decay(_ float64, _ sim.Duration, _ *Config) float64 { return 0 }

// ProportionalDecay loses a configured fraction of the standing per tick.
type ProportionalDecay struct{}

// Decay returns current times rate times elapsed.
func (ProportionalDecay) Decay(current float64, elapsed sim.Duration, cfg *Config) float64 {
	return current * cfg.DecayRate * float64(elapsed)
}

// HardClamp bounds to [Min, Max].
type HardClamp struct{}

// Clamp applies both bounds.
func (HardClamp) Clamp(value float64, cfg *Config) (float64, Boundary) {
	if value > cfg.Max {
		return cfg.Max, BoundaryUpper
	}
	if value < cfg.Min {
		return cfg.Min, BoundaryLower
	}
	return value, BoundaryNone
}

// ZeroClamp only floors at zero, leaving the upper side unbounded.
type ZeroClamp struct{}

// Clamp applies the floor.
func (ZeroClamp) Clamp(value float64, _ *Config) (float64, Boundary) {
	if value < 0 {
		return 0, BoundaryLower
	}
	return value, BoundaryNone
}

// NoClamp leaves the value unbounded.
type NoClamp struct{}

// Clamp returns the value unchanged.
func (NoClamp) Clamp(value float64, _ *Config) (float64, Boundary) {
	return value, BoundaryNone
}
