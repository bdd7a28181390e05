// Package sim defines the primitive value types shared by every mechanic
// domain: opaque identifiers, tick-based time, bounded scalar ratios, and
// ordered tiers.
//
// All simulation time flows through Tick and Duration; mechanics never read
// a wall clock. Scalar ratios declare their bounds in the type and are
// validated at construction, so a Config that holds them is range-checked
// before any step runs.
package sim
