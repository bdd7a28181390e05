package perception

// AccuracyPolicy rates a fresh sighting.
type AccuracyPolicy interface {
	// Accuracy returns the sighting accuracy within [0, 1].
	Accuracy(distance float64, cfg *Config) float64
}

// DecayPolicy fades impressions between sightings.
type DecayPolicy interface {
	// Decay returns the accuracy remaining after elapsed time.
	Decay(accuracy float64, elapsed float64, cfg *Config) float64
}

// ConstantAccuracy ignores distance, every sighting is equally sharp.
type ConstantAccuracy struct{}

// Accuracy returns the base accuracy.
func (ConstantAccuracy) Accuracy(distance float64, cfg *Config) float64 {
	return cfg.BaseAccuracy
}

// FalloffAccuracy degrades accuracy with distance, halving it at the
// configured falloff.
type FalloffAccuracy struct{}

// Accuracy scales the base accuracy down with distance.
func (FalloffAccuracy) Accuracy(distance float64, cfg *Config) float64 {
	return cfg.BaseAccuracy * cfg.Falloff / (cfg.Falloff + distance)
}

// LinearDecay loses a fixed amount of accuracy per unit of time.
type LinearDecay struct{}

// Decay subtracts rate times elapsed, floored at zero.
func (LinearDecay) Decay(accuracy float64, elapsed float64, cfg *Config) float64 {
	remaining := accuracy - cfg.DecayRate*elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProportionalDecay loses a fixed fraction of accuracy per unit of time.
type ProportionalDecay struct{}

// Decay multiplies accuracy by one minus the rate, per elapsed unit.
func (ProportionalDecay) Decay(accuracy float64, elapsed float64, cfg *Config) float64 {
	for range int(elapsed) {
		accuracy *= 1 - cfg.DecayRate
	}
	return accuracy
}
