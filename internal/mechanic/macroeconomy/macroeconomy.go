// Package macroeconomy implements the aggregate indicator mechanic: an
// economic policy slot folds per-step observations into price level,
// output, and employment indicators and flags regime changes.
package macroeconomy

import (
	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrInvalidSmoothing indicates a smoothing factor outside (0, 1].
	ErrInvalidSmoothing = apperrors.New(apperrors.CodeConfigValueOutOfRange, "smoothing must be within (0, 1]")
	// ErrInvalidRecessionBar indicates a non-positive recession bar.
	ErrInvalidRecessionBar = apperrors.New(apperrors.CodeConfigValueOutOfRange, "recession bar must be positive")
)

// Config holds the read-only macroeconomy parameters.
type Config struct {
	// Smoothing is the exponential moving average factor for smoothed
	// aggregation, the weight given to the newest observation.
	Smoothing float64
	// RecessionBar is the output level below which the economy counts
	// as contracting.
	RecessionBar float64
}

// Validate checks all config ranges.
func (c *Config) Validate() error {
	if c.Smoothing <= 0 || c.Smoothing > 1 {
		return ErrInvalidSmoothing
	}
	if c.RecessionBar <= 0 {
		return ErrInvalidRecessionBar
	}
	return nil
}

// Indicators is one snapshot of the aggregate economy.
type Indicators struct {
	PriceLevel float64 `json:"price_level"`
	Output     float64 `json:"output"`
	Employment float64 `json:"employment"`
}

// State holds the current indicators and the regime flag.
type State struct {
	Indicators  Indicators
	Contracting bool
}

// NewState creates a macroeconomy state at the given baseline.
func NewState(baseline Indicators) *State {
	return &State{Indicators: baseline}
}

// Observation is the raw per-step economic activity.
type Observation struct {
	Prices     float64
	Production float64
	Employed   float64
}

// Input is the command for one aggregation step.
type Input struct {
	Observation Observation
	Elapsed     sim.Duration
}

// Event is the sealed union of macroeconomy events.
type Event interface {
	Kind() string
	isEvent()
}

// IndicatorsUpdated records the indicators moving.
type IndicatorsUpdated struct {
	Before Indicators `json:"before"`
	After  Indicators `json:"after"`
}

// Kind returns the event kind tag.
func (IndicatorsUpdated) Kind() string { return "indicators_updated" }
func (IndicatorsUpdated) isEvent()     {}

// ContractionStarted records output falling below the recession bar.
type ContractionStarted struct {
	Output float64 `json:"output"`
}

// Kind returns the event kind tag.
func (ContractionStarted) Kind() string { return "contraction_started" }
func (ContractionStarted) isEvent()     {}

// ContractionEnded records output recovering past the recession bar.
type ContractionEnded struct {
	Output float64 `json:"output"`
}

// Kind returns the event kind tag.
func (ContractionEnded) Kind() string { return "contraction_ended" }
func (ContractionEnded) isEvent()     {}

// Describe returns the macroeconomy descriptor for analysis tooling.
func Describe() mechanic.Descriptor {
	return mechanic.Descriptor{
		Domain: "macroeconomy",
		Inputs: []string{"observe"},
		Events: []string{
			IndicatorsUpdated{}.Kind(), ContractionStarted{}.Kind(),
			ContractionEnded{}.Kind(),
		},
	}
}
