// Package mechanic defines the kernel shared by every simulation domain:
// the event emitter protocol and the descriptor registry.
//
// Each domain package (combat, contagion, reputation, ...) defines four
// associated shapes (Config, State, Input, and a sealed Event union) and a
// driver with a uniform step operation:
//
//	func (m Mechanic[...]) Step(cfg *Config, st *State, in Input, em mechanic.Emitter[Event])
//
// The driver is parameterized over the domain's policy slots so that policy
// composition resolves at compile time; interface values remain usable as
// type arguments when policies must be swapped at runtime.
//
// Step contracts, uniform across domains:
//
//   - Step never returns an error and never panics on well-formed input.
//     Declined operations surface as rejection events with a reason tag.
//   - Step is deterministic: all time arrives through Input elapsed ticks
//     and all randomness through an explicit seeded stream handle.
//   - Step runs to completion within one host tick; it does not block,
//     suspend, or iterate beyond state size and config caps.
//   - All effects are mutations of State and events pushed to the emitter,
//     in emission order.
//
// Config values are validated at construction and immutable afterwards;
// changing configuration is a teardown and rebuild of the mechanic.
package mechanic
