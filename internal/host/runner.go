package host

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/replay"
	"github.com/louisbranch/emergent.world/internal/sim"
)

const tracerName = "github.com/louisbranch/emergent.world/internal/host"

// Runner drives registered plugins tick by tick. Plugins step in
// registration order, message subscribers step after the tick's scheduled
// plugins, one hop per tick. Messages are journaled in emission order when
// a recorder is attached, so a run is reproducible from its seed and
// inputs alone.
type Runner struct {
	plugins     []Plugin
	byDomain    map[string]Plugin
	subs        map[string][]Plugin
	descriptors *mechanic.Registry
	recorder    *replay.Recorder
	tracer      trace.Tracer
	tick        sim.Tick
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{
		byDomain:    make(map[string]Plugin),
		subs:        make(map[string][]Plugin),
		descriptors: mechanic.NewRegistry(),
		tracer:      otel.Tracer(tracerName),
	}
}

// WithRecorder attaches a recorder that journals every published message.
func (r *Runner) WithRecorder(rec *replay.Recorder) *Runner {
	r.recorder = rec
	return r
}

// Register adds a plugin and records its descriptor. Registering a domain
// twice is an error.
func (r *Runner) Register(p Plugin) error {
	domain := p.Domain()
	if domain == "" {
		return apperrors.New(apperrors.CodePluginInvalidConfig, "plugin domain is required")
	}
	if _, dup := r.byDomain[domain]; dup {
		return apperrors.WithMetadata(apperrors.CodePluginDuplicateDomain, "plugin already registered",
			map[string]string{"domain": domain})
	}
	if v, ok := p.(interface{ ValidateConfig() error }); ok {
		if err := v.ValidateConfig(); err != nil {
			return apperrors.Wrap(apperrors.CodePluginInvalidConfig, "plugin config invalid", err)
		}
	}
	if err := r.descriptors.Register(p.Descriptor()); err != nil {
		return err
	}
	r.plugins = append(r.plugins, p)
	r.byDomain[domain] = p
	if s := p.Schedule(); s.Kind == ScheduleOnMessage {
		r.subs[s.Domain] = append(r.subs[s.Domain], p)
	}
	return nil
}

// Descriptors exposes the registered domain descriptors for analysis
// tooling.
func (r *Runner) Descriptors() *mechanic.Registry { return r.descriptors }

// Tick returns the last completed tick.
func (r *Runner) Tick() sim.Tick { return r.tick }

// Run executes the startup plugins and then the given number of ticks.
// Subscribers woken by startup messages step on the first tick. It stops
// early when the context is canceled.
func (r *Runner) Run(ctx context.Context, ticks uint64) error {
	for domain := range r.subs {
		if _, ok := r.byDomain[domain]; !ok {
			return apperrors.WithMetadata(apperrors.CodePluginUnknownMessage,
				"subscribed message domain has no publisher", map[string]string{"domain": domain})
		}
	}

	delivered := make(map[Plugin]bool)
	for _, p := range r.plugins {
		if p.Schedule().Kind != ScheduleStartup {
			continue
		}
		if err := r.dispatch(ctx, p, 0, delivered); err != nil {
			return err
		}
	}

	for i := uint64(0); i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.tick++
		if err := r.runTick(ctx, r.tick, delivered); err != nil {
			return err
		}
		delivered = make(map[Plugin]bool)
	}
	return nil
}

// runTick steps the tick's scheduled plugins and then every subscriber in
// delivered, which may already hold subscribers woken before the tick.
func (r *Runner) runTick(ctx context.Context, tick sim.Tick, delivered map[Plugin]bool) error {
	ctx, span := r.tracer.Start(ctx, "host.tick",
		trace.WithAttributes(attribute.String("sim.tick", strconv.FormatUint(uint64(tick), 10))))
	defer span.End()

	for _, p := range r.plugins {
		if !p.Schedule().Due(tick) {
			continue
		}
		if err := r.dispatch(ctx, p, tick, delivered); err != nil {
			span.RecordError(err)
			return err
		}
	}

	// Subscribers woken by this tick's messages run one hop, their own
	// messages are journaled but do not wake further subscribers until
	// the next tick.
	for _, p := range r.plugins {
		if !delivered[p] {
			continue
		}
		msgs, err := r.stepPlugin(ctx, p, tick)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if err := r.journal(ctx, msgs); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// stepPlugin runs one plugin activation under its own span.
func (r *Runner) stepPlugin(ctx context.Context, p Plugin, tick sim.Tick) ([]Message, error) {
	ctx, span := r.tracer.Start(ctx, "host.step",
		trace.WithAttributes(attribute.String("sim.domain", p.Domain())))
	defer span.End()

	msgs, err := p.Step(ctx, tick)
	if err != nil {
		span.RecordError(err)
	}
	return msgs, err
}

func (r *Runner) dispatch(ctx context.Context, p Plugin, tick sim.Tick, delivered map[Plugin]bool) error {
	msgs, err := r.stepPlugin(ctx, p, tick)
	if err != nil {
		return err
	}
	if err := r.journal(ctx, msgs); err != nil {
		return err
	}
	for _, msg := range msgs {
		for _, sub := range r.subs[msg.Domain] {
			sub.Deliver(msg)
			delivered[sub] = true
		}
	}
	return nil
}

func (r *Runner) journal(ctx context.Context, msgs []Message) error {
	if r.recorder == nil {
		return nil
	}
	for _, msg := range msgs {
		if err := r.recorder.RecordEncoded(ctx, msg.Tick, msg.Domain, msg.Kind, msg.Payload); err != nil {
			return err
		}
	}
	return nil
}
