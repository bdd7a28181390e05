package sim

// Rarity is an ordered tier used by rarity-aware inventory policies.
type Rarity int

const (
	// RarityCommon is the lowest tier.
	RarityCommon Rarity = iota
	// RarityUncommon is above common.
	RarityUncommon
	// RarityRare is above uncommon.
	RarityRare
	// RarityEpic is above rare.
	RarityEpic
	// RarityLegendary is the highest tier.
	RarityLegendary
)

// String returns the tier name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Severity is an ordered tier derived from a payload magnitude.
type Severity int

const (
	// SeverityNone indicates no effect.
	SeverityNone Severity = iota
	// SeverityMild indicates a minor effect.
	SeverityMild
	// SeverityModerate indicates a noticeable effect.
	SeverityModerate
	// SeveritySevere indicates a serious effect.
	SeveritySevere
	// SeverityCritical indicates the maximum effect.
	SeverityCritical
)

// SeverityOf maps a magnitude in [0, 1] to a tier. Values at or below zero
// map to none; values above one map to critical.
func SeverityOf(magnitude float64) Severity {
	switch {
	case magnitude <= 0:
		return SeverityNone
	case magnitude < 0.25:
		return SeverityMild
	case magnitude < 0.5:
		return SeverityModerate
	case magnitude < 0.75:
		return SeveritySevere
	default:
		return SeverityCritical
	}
}

// String returns the tier name.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
