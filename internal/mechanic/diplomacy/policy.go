package diplomacy

// InfluencePolicy turns raw argument strength into base influence.
type InfluencePolicy interface {
	// Influence returns the base shift magnitude for an argument.
	Influence(strength float64, argType ArgumentType, cfg *Config) float64
}

// ResistancePolicy dampens influence by the target's resistance.
type ResistancePolicy interface {
	// Resist returns the influence that survives the target's resistance.
	Resist(influence, resistance float64, cfg *Config) float64
}

// ContextPolicy adjusts the surviving influence for the standing relation.
type ContextPolicy interface {
	// Contextualize returns the final shift given the current score.
	Contextualize(influence float64, argType ArgumentType, score float64, cfg *Config) float64
}

// LinearInfluence treats every argument type identically.
type LinearInfluence struct{}

// Influence returns the raw strength.
func (LinearInfluence) Influence(strength float64, argType ArgumentType, cfg *Config) float64 {
	return strength
}

// TypedInfluence scales strength by the configured per-type multiplier.
type TypedInfluence struct{}

// Influence multiplies strength by the type multiplier, defaulting to 1.
func (TypedInfluence) Influence(strength float64, argType ArgumentType, cfg *Config) float64 {
	mult, ok := cfg.Multipliers[argType]
	if !ok {
		mult = 1
	}
	return strength * mult
}

// ProportionalResistance lets resistance absorb its share of the influence.
type ProportionalResistance struct{}

// Resist returns influence scaled by one minus the resistance.
func (ProportionalResistance) Resist(influence, resistance float64, cfg *Config) float64 {
	return influence * (1 - resistance)
}

// ThresholdResistance blocks arguments weaker than the resistance outright.
type ThresholdResistance struct{}

// Resist returns the influence unchanged when it exceeds the resistance and
// zero otherwise.
func (ThresholdResistance) Resist(influence, resistance float64, cfg *Config) float64 {
	if influence <= resistance {
		return 0
	}
	return influence
}

// NeutralContext ignores the standing relation.
type NeutralContext struct{}

// Contextualize returns the influence unchanged.
func (NeutralContext) Contextualize(influence float64, argType ArgumentType, score float64, cfg *Config) float64 {
	return influence
}

// RelationContext makes warm relations receptive and hostile ones deaf.
// Threats work the other way, landing harder on a hostile audience.
type RelationContext struct{}

// Contextualize scales influence into [0, influence] by the relation score.
func (RelationContext) Contextualize(influence float64, argType ArgumentType, score float64, cfg *Config) float64 {
	receptivity := (score + 1) / 2
	if argType == ArgumentThreat {
		receptivity = 1 - receptivity
	}
	return influence * receptivity
}
