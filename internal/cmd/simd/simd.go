// Package simd parses simulation daemon flags and runs a journaled world.
package simd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/host"
	"github.com/louisbranch/emergent.world/internal/mechanic/combat"
	"github.com/louisbranch/emergent.world/internal/mechanic/contagion"
	"github.com/louisbranch/emergent.world/internal/mechanic/exchange"
	"github.com/louisbranch/emergent.world/internal/mechanic/reputation"
	entrypoint "github.com/louisbranch/emergent.world/internal/platform/cmd"
	"github.com/louisbranch/emergent.world/internal/propagation"
	"github.com/louisbranch/emergent.world/internal/random"
	"github.com/louisbranch/emergent.world/internal/replay"
	"github.com/louisbranch/emergent.world/internal/sim"
	"github.com/louisbranch/emergent.world/internal/sim/rng"
	"github.com/louisbranch/emergent.world/internal/storage"
	bboltstore "github.com/louisbranch/emergent.world/internal/storage/bbolt"
	"github.com/louisbranch/emergent.world/internal/storage/sqlite"
)

// Config holds simd command configuration.
type Config struct {
	Seed         int64  `env:"EMERGENT_WORLD_SIMD_SEED" envDefault:"0"`
	Ticks        uint64 `env:"EMERGENT_WORLD_SIMD_TICKS" envDefault:"120"`
	JournalPath  string `env:"EMERGENT_WORLD_SIMD_JOURNAL" envDefault:"simd-journal.db"`
	SnapshotPath string `env:"EMERGENT_WORLD_SIMD_SNAPSHOTS" envDefault:"simd-snapshots.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "The world seed (0 = random)")
	fs.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "The number of ticks to run")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "The event journal path")
	fs.StringVar(&cfg.SnapshotPath, "snapshots", cfg.SnapshotPath, "The snapshot store path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the simulation daemon.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSimd, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	if cfg.Seed < 0 {
		return apperrors.WithMetadata(apperrors.CodeSeedOutOfRange, "seed must be non-negative",
			map[string]string{"seed": strconv.FormatInt(cfg.Seed, 10)})
	}
	if cfg.Seed == 0 {
		seed, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
		cfg.Seed = seed
	}

	journal, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	snapshots, err := bboltstore.Open(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer snapshots.Close()

	registry := replay.NewCodecRegistry()
	codecs := []replay.Codec{combat.Codec{}, contagion.Codec{}, reputation.Codec{}, exchange.Codec{}}
	for _, codec := range codecs {
		if err := registry.Register(codec); err != nil {
			return fmt.Errorf("register codec: %w", err)
		}
	}

	recorder, err := replay.NewRecorder(ctx, journal, registry, cfg.Seed)
	if err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}

	world, err := newWorld(cfg.Seed)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	runner := host.NewRunner().WithRecorder(recorder)
	for _, plugin := range world.plugins() {
		if err := runner.Register(plugin); err != nil {
			return fmt.Errorf("register plugin: %w", err)
		}
	}

	log.Printf("running %d ticks with seed %d", cfg.Ticks, cfg.Seed)
	if err := runner.Run(ctx, cfg.Ticks); err != nil {
		return fmt.Errorf("run world: %w", err)
	}

	if err := world.snapshot(ctx, snapshots, runner.Tick()); err != nil {
		return fmt.Errorf("snapshot world: %w", err)
	}
	log.Printf("journaled %d events across %d ticks", recorder.Seq(), runner.Tick())
	return nil
}

// world bundles the mechanic states stepped by the runner so the final run
// can snapshot each one.
type world struct {
	combatState     *combat.State
	contagionState  *contagion.State
	reputationState *reputation.State
	exchangeState   *exchange.State

	registered []host.Plugin
}

func newWorld(seed int64) (*world, error) {
	w := &world{}
	stream := rng.New(seed)

	combatCfg := &combat.Config{CritChance: 0.1, CritMultiplier: 2}
	if err := combatCfg.Validate(); err != nil {
		return nil, err
	}
	w.combatState = combat.NewState()
	w.combatState.Combatants["wolf"] = &combat.Combatant{HP: 120, MaxHP: 120, Attack: 9, Defense: 3}
	w.combatState.Combatants["bear"] = &combat.Combatant{HP: 200, MaxHP: 200, Attack: 14, Defense: 6}
	combatRand := stream.Fork()
	combatMechanic := combat.New(combat.LinearDamage{}, combat.NeutralElement{}, combat.SubtractiveDefense{}, combat.ChanceCritical{})
	w.registered = append(w.registered, host.NewAdapter(
		combat.Describe(),
		host.EveryTick(),
		combatCfg, w.combatState,
		func(tick sim.Tick, _ []host.Message) []combat.Input {
			// Alternate attacks so both sides act over the run.
			if tick%2 == 1 {
				return []combat.Input{{AttackerID: "wolf", DefenderID: "bear", Rand: combatRand}}
			}
			return []combat.Input{{AttackerID: "bear", DefenderID: "wolf", Rand: combatRand}}
		},
		combatMechanic.Step,
		func(ev combat.Event) (string, []byte, error) { return combat.Codec{}.Encode(ev) },
	))

	contagionCfg := &contagion.Config{Schedule: propagation.Synchronous, Threshold: 0.05, DecayRate: 0.02}
	if err := contagionCfg.Validate(); err != nil {
		return nil, err
	}
	w.contagionState = contagion.NewState()
	if err := seedOutbreak(w.contagionState.Topo); err != nil {
		return nil, err
	}
	contagionMechanic := contagion.New(
		contagion.DefaultSpread(contagionCfg),
		contagion.AttenuatingMutation{Loss: 0.1},
		propagation.StrongerProgression[contagion.Infection]{},
		contagion.LinearDecay{Rate: contagionCfg.DecayRate},
	)
	w.registered = append(w.registered, host.NewAdapter(
		contagion.Describe(),
		host.EveryTick(),
		contagionCfg, w.contagionState,
		func(sim.Tick, []host.Message) []contagion.Input {
			return []contagion.Input{{Elapsed: 1}}
		},
		contagionMechanic.Step,
		func(ev contagion.Event) (string, []byte, error) { return contagion.Codec{}.Encode(ev) },
	))

	reputationCfg := &reputation.Config{Min: 0, Max: 100, DecayRate: 0.01}
	if err := reputationCfg.Validate(); err != nil {
		return nil, err
	}
	w.reputationState = reputation.NewState()
	w.reputationState.Standings["wolf"] = 50
	w.reputationState.Standings["bear"] = 50
	reputationMechanic := reputation.New(reputation.LinearChange{}, reputation.ProportionalDecay{}, reputation.HardClamp{})
	w.registered = append(w.registered, host.NewAdapter(
		reputation.Describe(),
		host.OnMessage("combat"),
		reputationCfg, w.reputationState,
		func(_ sim.Tick, inbox []host.Message) []reputation.Input {
			var ins []reputation.Input
			for _, msg := range inbox {
				if msg.Kind != "defeated" {
					continue
				}
				var defeated combat.Defeated
				if err := json.Unmarshal(msg.Payload, &defeated); err != nil {
					continue
				}
				// Surviving the duel raises the victor's standing.
				for id := range w.combatState.Combatants {
					if id == defeated.EntityID {
						continue
					}
					ins = append(ins, reputation.Input{EntityID: id, Delta: 15, Elapsed: 1})
				}
			}
			return ins
		},
		reputationMechanic.Step,
		func(ev reputation.Event) (string, []byte, error) { return reputation.Codec{}.Encode(ev) },
	))

	exchangeCfg := &exchange.Config{BaseValues: map[sim.AssetID]decimal.Decimal{
		"grain": decimal.NewFromInt(3),
		"hide":  decimal.NewFromInt(7),
	}}
	if err := exchangeCfg.Validate(); err != nil {
		return nil, err
	}
	w.exchangeState = exchange.NewState()
	miller := w.exchangeState.AddTrader("miller", decimal.NewFromInt(40))
	miller.Holdings["grain"] = 30
	tanner := w.exchangeState.AddTrader("tanner", decimal.NewFromInt(25))
	tanner.Holdings["hide"] = 10
	exchangeMechanic := exchange.New(exchange.TableValuation{}, exchange.StrictExecution{})
	w.registered = append(w.registered, host.NewAdapter(
		exchange.Describe(),
		host.EveryNTicks(5),
		exchangeCfg, w.exchangeState,
		func(tick sim.Tick, _ []host.Message) []exchange.Input {
			if tick%10 == 0 {
				return []exchange.Input{{BuyerID: "miller", SellerID: "tanner", AssetID: "hide", Quantity: 1}}
			}
			return []exchange.Input{{BuyerID: "tanner", SellerID: "miller", AssetID: "grain", Quantity: 2}}
		},
		exchangeMechanic.Step,
		func(ev exchange.Event) (string, []byte, error) { return exchange.Codec{}.Encode(ev) },
	))

	return w, nil
}

// seedOutbreak builds a three-settlement topology with one infected node.
func seedOutbreak(topo *propagation.Topology[contagion.Infection]) error {
	nodes := []propagation.Node[contagion.Infection]{
		{ID: "harbor", Kind: propagation.NodeKindPopulation, Capacity: 1, Payload: contagion.Infection{Severity: 0.6, Strain: "grippe"}},
		{ID: "market", Kind: propagation.NodeKindPopulation, Capacity: 1},
		{ID: "keep", Kind: propagation.NodeKindPopulation, Capacity: 1},
	}
	for _, n := range nodes {
		if err := topo.AddNode(n); err != nil {
			return err
		}
	}
	edges := []propagation.Edge{
		{ID: "harbor-market", Source: "harbor", Target: "market", Weight: 0.8, Distance: 1},
		{ID: "market-keep", Source: "market", Target: "keep", Weight: 0.4, Distance: 2},
		{ID: "market-harbor", Source: "market", Target: "harbor", Weight: 0.8, Distance: 1},
	}
	for _, e := range edges {
		if err := topo.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) plugins() []host.Plugin { return w.registered }

// snapshot persists every mechanic state at the final tick.
func (w *world) snapshot(ctx context.Context, store storage.SnapshotStore, tick sim.Tick) error {
	states := map[string]any{
		"combat":     w.combatState,
		"contagion":  w.contagionState,
		"reputation": w.reputationState,
		"exchange":   w.exchangeState,
	}
	for domain, state := range states {
		payload, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("marshal %s state: %w", domain, err)
		}
		snap := storage.Snapshot{Domain: domain, Tick: tick, State: payload}
		if err := store.Put(ctx, snap); err != nil {
			return fmt.Errorf("store %s snapshot: %w", domain, err)
		}
	}
	return nil
}
