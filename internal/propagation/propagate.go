package propagation

import (
	"sort"

	"github.com/louisbranch/emergent.world/internal/mechanic"
	"github.com/louisbranch/emergent.world/internal/sim"
)

// Schedule selects how a transmission pass orders its writes.
type Schedule string

const (
	// Synchronous collects all transmissions against a frozen snapshot and
	// applies them at the end of the pass. Deterministic; the default.
	Synchronous Schedule = "synchronous"
	// Asynchronous applies each transmission as computed; later sources
	// observe earlier effects within the same pass.
	Asynchronous Schedule = "asynchronous"
)

// Event is the union of substrate events.
type Event interface {
	Kind() string
}

// Transmitted records a successful draw across an edge.
type Transmitted[P Payload] struct {
	Source   sim.NodeID `json:"source"`
	Target   sim.NodeID `json:"target"`
	Payload  P          `json:"payload"`
	Strength float64    `json:"strength"`
}

// Kind returns the event kind tag.
func (Transmitted[P]) Kind() string { return "transmitted" }

// Applied records a payload written into a target's content slot.
type Applied[P Payload] struct {
	Target  sim.NodeID `json:"target"`
	Payload P          `json:"payload"`
}

// Kind returns the event kind tag.
func (Applied[P]) Kind() string { return "applied" }

// Decayed records a payload losing magnitude without clearing.
type Decayed struct {
	Node      sim.NodeID `json:"node"`
	Remaining float64    `json:"remaining"`
}

// Kind returns the event kind tag.
func (Decayed) Kind() string { return "decayed" }

// Cleared records a payload magnitude reaching zero.
type Cleared struct {
	Node sim.NodeID `json:"node"`
}

// Kind returns the event kind tag.
func (Cleared) Kind() string { return "cleared" }

// Propagator runs transmission passes over a topology, composed from spread,
// mutation, and progression policies.
type Propagator[P Payload, S SpreadPolicy[P], M MutationPolicy[P], G ProgressionPolicy[P]] struct {
	spread   S
	mutate   M
	progress G
}

// NewPropagator composes a propagator from its policies.
func NewPropagator[P Payload, S SpreadPolicy[P], M MutationPolicy[P], G ProgressionPolicy[P]](spread S, mutate M, progress G) Propagator[P, S, M, G] {
	return Propagator[P, S, M, G]{spread: spread, mutate: mutate, progress: progress}
}

type candidate[P Payload] struct {
	source  sim.NodeID
	payload P
}

// Transmit runs one transmission pass. Sources iterate in lexicographic
// NodeID order and edges in insertion order, so both schedules are
// reproducible for identical inputs. Under the synchronous schedule,
// multiple transmissions into one target resolve to the strongest mutated
// payload, ties broken by lexicographically smaller source id.
func (pr Propagator[P, S, M, G]) Transmit(topo *Topology[P], schedule Schedule, reach float64, elapsed sim.Duration, em mechanic.Emitter[Event]) {
	switch schedule {
	case Asynchronous:
		pr.transmitAsync(topo, reach, elapsed, em)
	default:
		pr.transmitSync(topo, reach, elapsed, em)
	}
}

func (pr Propagator[P, S, M, G]) transmitSync(topo *Topology[P], reach float64, elapsed sim.Duration, em mechanic.Emitter[Event]) {
	pending := make(map[sim.NodeID]candidate[P])
	var targets []sim.NodeID

	for _, sourceID := range topo.NodeIDs() {
		source, err := topo.Node(sourceID)
		if err != nil || source.Payload.Magnitude() <= 0 {
			continue
		}
		for _, edge := range topo.NeighborsWithin(sourceID, reach) {
			strength, ok := pr.spread.Spread(source.Payload, edge.Weight, edge.Distance, elapsed)
			if !ok {
				continue
			}
			mutated := pr.mutate.Mutate(source.Payload, strength)
			em.Emit(Transmitted[P]{Source: sourceID, Target: edge.Target, Payload: mutated, Strength: strength})

			best, seen := pending[edge.Target]
			if !seen {
				pending[edge.Target] = candidate[P]{source: sourceID, payload: mutated}
				targets = append(targets, edge.Target)
				continue
			}
			if mutated.Magnitude() > best.payload.Magnitude() ||
				(mutated.Magnitude() == best.payload.Magnitude() && sourceID < best.source) {
				pending[edge.Target] = candidate[P]{source: sourceID, payload: mutated}
			}
		}
	}

	sortNodeIDs(targets)
	for _, targetID := range targets {
		target, err := topo.Node(targetID)
		if err != nil {
			continue
		}
		target.Payload = pr.progress.Progress(target.Payload, pending[targetID].payload)
		em.Emit(Applied[P]{Target: targetID, Payload: target.Payload})
	}
}

func (pr Propagator[P, S, M, G]) transmitAsync(topo *Topology[P], reach float64, elapsed sim.Duration, em mechanic.Emitter[Event]) {
	for _, sourceID := range topo.NodeIDs() {
		source, err := topo.Node(sourceID)
		if err != nil || source.Payload.Magnitude() <= 0 {
			continue
		}
		for _, edge := range topo.NeighborsWithin(sourceID, reach) {
			strength, ok := pr.spread.Spread(source.Payload, edge.Weight, edge.Distance, elapsed)
			if !ok {
				continue
			}
			mutated := pr.mutate.Mutate(source.Payload, strength)
			em.Emit(Transmitted[P]{Source: sourceID, Target: edge.Target, Payload: mutated, Strength: strength})

			target, err := topo.Node(edge.Target)
			if err != nil {
				continue
			}
			target.Payload = pr.progress.Progress(target.Payload, mutated)
			em.Emit(Applied[P]{Target: edge.Target, Payload: target.Payload})
		}
	}
}

// DecayPass reduces every occupied content slot per the decay policy and
// emits Decayed or Cleared per node, iterating in lexicographic order.
func DecayPass[P Payload, D DecayPolicy[P]](topo *Topology[P], policy D, elapsed sim.Duration, em mechanic.Emitter[Event]) {
	for _, nodeID := range topo.NodeIDs() {
		node, err := topo.Node(nodeID)
		if err != nil {
			continue
		}
		before := node.Payload.Magnitude()
		if before <= 0 {
			continue
		}
		node.Payload = policy.Decay(node.Payload, elapsed)
		remaining := node.Payload.Magnitude()
		switch {
		case remaining <= 0:
			em.Emit(Cleared{Node: nodeID})
		case remaining < before:
			em.Emit(Decayed{Node: nodeID, Remaining: remaining})
		}
	}
}

func sortNodeIDs(ids []sim.NodeID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
