package macroeconomy

// EconomicPolicy folds one observation into the indicators.
type EconomicPolicy interface {
	// Aggregate returns the next indicator snapshot.
	Aggregate(prev Indicators, obs Observation, cfg *Config) Indicators
}

// SnapshotAggregate replaces the indicators with the latest observation,
// a fully reactive economy with no memory.
type SnapshotAggregate struct{}

// Aggregate returns the observation as the new indicators.
func (SnapshotAggregate) Aggregate(prev Indicators, obs Observation, cfg *Config) Indicators {
	return Indicators{
		PriceLevel: obs.Prices,
		Output:     obs.Production,
		Employment: obs.Employed,
	}
}

// SmoothedAggregate blends observations into the indicators with an
// exponential moving average, dampening single-step shocks.
type SmoothedAggregate struct{}

// Aggregate weighs the observation by the configured smoothing factor.
func (SmoothedAggregate) Aggregate(prev Indicators, obs Observation, cfg *Config) Indicators {
	blend := func(old, next float64) float64 {
		return old*(1-cfg.Smoothing) + next*cfg.Smoothing
	}
	return Indicators{
		PriceLevel: blend(prev.PriceLevel, obs.Prices),
		Output:     blend(prev.Output, obs.Production),
		Employment: blend(prev.Employment, obs.Employed),
	}
}
