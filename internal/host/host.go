// Package host embeds mechanics into a tick-driven runtime. Each mechanic
// is wrapped as a plugin with a schedule, stepped by the runner in
// registration order, and its events are published as domain-tagged
// messages that other plugins can subscribe to and that can be journaled
// for replay.
package host

import "github.com/louisbranch/emergent.world/internal/sim"

// Message is the envelope mechanic events travel in across domains.
type Message struct {
	Tick    sim.Tick
	Domain  string
	Kind    string
	Payload []byte
}

// ScheduleKind selects when a plugin steps.
type ScheduleKind int

const (
	// ScheduleStartup steps once before the first tick.
	ScheduleStartup ScheduleKind = iota
	// ScheduleEveryTick steps on every tick.
	ScheduleEveryTick
	// ScheduleEveryNTicks steps on every Nth tick.
	ScheduleEveryNTicks
	// ScheduleOnMessage steps when a message from the watched domain
	// arrives.
	ScheduleOnMessage
)

// Schedule describes when a plugin steps.
type Schedule struct {
	Kind ScheduleKind
	// N is the tick interval for ScheduleEveryNTicks.
	N uint64
	// Domain is the watched domain for ScheduleOnMessage.
	Domain string
}

// Startup schedules a single step before the first tick.
func Startup() Schedule { return Schedule{Kind: ScheduleStartup} }

// EveryTick schedules a step on every tick.
func EveryTick() Schedule { return Schedule{Kind: ScheduleEveryTick} }

// EveryNTicks schedules a step on every nth tick.
func EveryNTicks(n uint64) Schedule { return Schedule{Kind: ScheduleEveryNTicks, N: n} }

// OnMessage schedules a step whenever the watched domain publishes.
func OnMessage(domain string) Schedule { return Schedule{Kind: ScheduleOnMessage, Domain: domain} }

// Due reports whether a tick-driven schedule fires on the given tick.
func (s Schedule) Due(tick sim.Tick) bool {
	switch s.Kind {
	case ScheduleEveryTick:
		return true
	case ScheduleEveryNTicks:
		return s.N > 0 && uint64(tick)%s.N == 0
	default:
		return false
	}
}
