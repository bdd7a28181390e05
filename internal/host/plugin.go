package host

import (
	"context"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// Plugin is one mechanic embedded in the runner.
type Plugin interface {
	// Domain returns the plugin's unique domain tag.
	Domain() string
	// Descriptor describes the plugin for analysis tooling.
	Descriptor() mechanic.Descriptor
	// Schedule returns when the plugin steps.
	Schedule() Schedule
	// Deliver hands the plugin a subscribed message ahead of its next
	// step.
	Deliver(msg Message)
	// Step activates the plugin once and returns the messages its
	// mechanic emitted.
	Step(ctx context.Context, tick sim.Tick) ([]Message, error)
}

// StepFunc advances a mechanic one input against its config and state.
type StepFunc[C, S, I, E any] func(cfg *C, st *S, in I, em mechanic.Emitter[E])

// InputFunc produces the inputs for one activation. The inbox holds the
// subscribed messages delivered since the previous step.
type InputFunc[I any] func(tick sim.Tick, inbox []Message) []I

// EncodeFunc serializes one event into its kind tag and payload.
type EncodeFunc[E any] func(event E) (kind string, payload []byte, err error)

// Adapter wraps a policy mechanic as a Plugin. C, S, I, and E are the
// mechanic's config, state, input, and event types.
type Adapter[C, S, I, E any] struct {
	domain     string
	descriptor mechanic.Descriptor
	schedule   Schedule
	cfg        *C
	state      *S
	inputs     InputFunc[I]
	step       StepFunc[C, S, I, E]
	encode     EncodeFunc[E]

	inbox []Message
	buf   mechanic.Buffer[E]
}

// NewAdapter builds a plugin from a mechanic's parts.
func NewAdapter[C, S, I, E any](
	descriptor mechanic.Descriptor,
	schedule Schedule,
	cfg *C,
	state *S,
	inputs InputFunc[I],
	step StepFunc[C, S, I, E],
	encode EncodeFunc[E],
) *Adapter[C, S, I, E] {
	return &Adapter[C, S, I, E]{
		domain:     descriptor.Domain,
		descriptor: descriptor,
		schedule:   schedule,
		cfg:        cfg,
		state:      state,
		inputs:     inputs,
		step:       step,
		encode:     encode,
	}
}

// Domain returns the plugin's domain tag.
func (a *Adapter[C, S, I, E]) Domain() string { return a.domain }

// Descriptor returns the plugin's descriptor.
func (a *Adapter[C, S, I, E]) Descriptor() mechanic.Descriptor { return a.descriptor }

// Schedule returns when the plugin steps.
func (a *Adapter[C, S, I, E]) Schedule() Schedule { return a.schedule }

// Deliver queues a subscribed message for the next step.
func (a *Adapter[C, S, I, E]) Deliver(msg Message) {
	a.inbox = append(a.inbox, msg)
}

// State exposes the mechanic state, for snapshots and assertions.
func (a *Adapter[C, S, I, E]) State() *S { return a.state }

// ValidateConfig checks the adapter's config when the domain defines
// validation.
func (a *Adapter[C, S, I, E]) ValidateConfig() error {
	if v, ok := any(a.cfg).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// Step drains the inbox into inputs, runs the mechanic over each, and
// encodes the emitted events as messages.
func (a *Adapter[C, S, I, E]) Step(ctx context.Context, tick sim.Tick) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inbox := a.inbox
	a.inbox = nil
	var ins []I
	if a.inputs != nil {
		ins = a.inputs(tick, inbox)
	}

	for _, in := range ins {
		a.step(a.cfg, a.state, in, &a.buf)
	}

	events := a.buf.Drain()
	if len(events) == 0 {
		return nil, nil
	}
	out := make([]Message, 0, len(events))
	for _, ev := range events {
		kind, payload, err := a.encode(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, Message{Tick: tick, Domain: a.domain, Kind: kind, Payload: payload})
	}
	return out, nil
}
