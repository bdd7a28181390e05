package sim

// Tick is a monotonic non-negative simulation timestamp measured in host
// update units.
type Tick uint64

// Duration is a non-negative span of ticks.
type Duration uint64

// Add advances the tick by a duration.
func (t Tick) Add(d Duration) Tick {
	return t + Tick(d)
}

// Since returns the duration elapsed from earlier to t. It returns zero when
// earlier is in the future.
func (t Tick) Since(earlier Tick) Duration {
	if earlier > t {
		return 0
	}
	return Duration(t - earlier)
}
