package evolution

import (
	"math"

	"github.com/louisbranch/emergent.world/internal/sim/rng"
)

// DirectionPolicy picks which way a trait drifts.
type DirectionPolicy interface {
	// Direction returns a drift sign within [-1, 1] for a trait.
	Direction(trait string, value float64, env map[string]float64, rand *rng.Stream) float64
}

// RatePolicy sizes each drift step.
type RatePolicy interface {
	// Rate returns the drift magnitude for one step.
	Rate(value float64, elapsed float64, cfg *Config) float64
}

// EnvironmentalPolicy scores an organism against the environment.
type EnvironmentalPolicy interface {
	// Fitness returns a score within [0, 1], higher is better adapted.
	Fitness(traits, env map[string]float64, cfg *Config) float64
}

// GradientDirection drifts each trait toward the environmental optimum.
type GradientDirection struct{}

// Direction returns the sign of the gap between the optimum and the value.
// Traits without an environmental optimum hold steady.
func (GradientDirection) Direction(trait string, value float64, env map[string]float64, rand *rng.Stream) float64 {
	optimum, ok := env[trait]
	if !ok {
		return 0
	}
	switch {
	case optimum > value:
		return 1
	case optimum < value:
		return -1
	default:
		return 0
	}
}

// RandomWalkDirection drifts each trait by an unbiased coin flip, neutral
// evolution with no selective pressure.
type RandomWalkDirection struct{}

// Direction returns -1 or 1 from the seeded stream. A nil stream holds
// the trait steady.
func (RandomWalkDirection) Direction(trait string, value float64, env map[string]float64, rand *rng.Stream) float64 {
	if rand == nil {
		return 0
	}
	if rand.Chance(0.5) {
		return 1
	}
	return -1
}

// ConstantRate drifts by the configured step size scaled by elapsed time.
type ConstantRate struct{}

// Rate returns step size times elapsed.
func (ConstantRate) Rate(value float64, elapsed float64, cfg *Config) float64 {
	return cfg.StepSize * elapsed
}

// DampedRate slows drift as traits approach the bound, large traits become
// harder to change.
type DampedRate struct{}

// Rate scales the constant rate by the remaining headroom fraction.
func (DampedRate) Rate(value float64, elapsed float64, cfg *Config) float64 {
	headroom := 1 - value/cfg.TraitBound
	if headroom < 0 {
		headroom = 0
	}
	return cfg.StepSize * elapsed * headroom
}

// ProximityFitness scores by closeness to the environmental optima.
type ProximityFitness struct{}

// Fitness averages per-trait closeness, 1 at the optimum falling linearly
// to 0 at a full trait bound away. Organisms with no scored traits are
// neutrally fit.
func (ProximityFitness) Fitness(traits, env map[string]float64, cfg *Config) float64 {
	var sum float64
	var n int
	for trait, optimum := range env {
		value, ok := traits[trait]
		if !ok {
			continue
		}
		gap := math.Abs(optimum-value) / cfg.TraitBound
		if gap > 1 {
			gap = 1
		}
		sum += 1 - gap
		n++
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}

// ThresholdFitness scores each trait pass or fail, a trait counts only when
// it lands within a tenth of the bound from its optimum.
type ThresholdFitness struct{}

// Fitness returns the fraction of environmental optima the organism meets.
func (ThresholdFitness) Fitness(traits, env map[string]float64, cfg *Config) float64 {
	var passed int
	var n int
	tolerance := cfg.TraitBound / 10
	for trait, optimum := range env {
		value, ok := traits[trait]
		if !ok {
			continue
		}
		if math.Abs(optimum-value) <= tolerance {
			passed++
		}
		n++
	}
	if n == 0 {
		return 0.5
	}
	return float64(passed) / float64(n)
}
