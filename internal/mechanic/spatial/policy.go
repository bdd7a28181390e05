package spatial

import "math"

// TopologyPolicy constrains where movers may stand.
type TopologyPolicy interface {
	// Constrain snaps a proposed position onto the topology.
	Constrain(p Position, cfg *Config) Position
}

// DistancePolicy measures the ground between two positions.
type DistancePolicy interface {
	// Distance returns the travel cost between two positions.
	Distance(a, b Position, cfg *Config) float64
}

// PlanarTopology is the open plane, any position is valid.
type PlanarTopology struct{}

// Constrain returns the position unchanged.
func (PlanarTopology) Constrain(p Position, cfg *Config) Position { return p }

// GridTopology snaps positions to the configured cell lattice.
type GridTopology struct{}

// Constrain rounds both coordinates to the nearest cell center.
func (GridTopology) Constrain(p Position, cfg *Config) Position {
	return Position{
		X: math.Round(p.X/cfg.CellSize) * cfg.CellSize,
		Y: math.Round(p.Y/cfg.CellSize) * cfg.CellSize,
	}
}

// EuclideanDistance measures straight-line ground.
type EuclideanDistance struct{}

// Distance returns the Euclidean distance.
func (EuclideanDistance) Distance(a, b Position, cfg *Config) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// ManhattanDistance measures axis-aligned ground, the natural metric for
// grid topologies.
type ManhattanDistance struct{}

// Distance returns the Manhattan distance.
func (ManhattanDistance) Distance(a, b Position, cfg *Config) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}
