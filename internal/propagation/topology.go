// Package propagation provides the graph substrate for diffusion mechanics:
// a weighted directed topology, transmission passes under a synchronous or
// asynchronous schedule, and per-tick payload decay.
//
// The topology is an arena of nodes addressed by NodeID; edges reference
// source and target by id, never by pointer, so the graph snapshots cleanly
// and supports cycles. Structural changes (add node, add edge) happen outside
// any mechanic step under exclusive access; passes only read structure and
// write payload slots.
package propagation

import (
	"encoding/json"
	"sort"

	apperrors "github.com/louisbranch/emergent.world/internal/errors"
	"github.com/louisbranch/emergent.world/internal/sim"
)

var (
	// ErrNodeExists indicates an id collision on AddNode.
	ErrNodeExists = apperrors.New(apperrors.CodeTopologyNodeExists, "node id already present")
	// ErrNodeUnknown indicates an edge endpoint or lookup for a missing node.
	ErrNodeUnknown = apperrors.New(apperrors.CodeTopologyNodeUnknown, "node id is not present")
	// ErrEdgeInvalid indicates a non-positive distance or self-loop.
	ErrEdgeInvalid = apperrors.New(apperrors.CodeTopologyEdgeInvalid, "edge requires distinct endpoints and positive distance")
	// ErrWeightRange indicates an edge weight outside [0, 1].
	ErrWeightRange = apperrors.New(apperrors.CodeTopologyWeightRange, "edge weight must be within [0, 1]")
)

// Payload is the propagating content carried in a node's slot. Magnitude
// reports its strength; a magnitude at or below zero means the slot is
// effectively empty.
type Payload interface {
	Magnitude() float64
}

// NodeKind classifies a node for policy dispatch.
type NodeKind string

const (
	// NodeKindPopulation aggregates many agents.
	NodeKindPopulation NodeKind = "population"
	// NodeKindLocation is a place.
	NodeKindLocation NodeKind = "location"
	// NodeKindAgent is a single actor.
	NodeKindAgent NodeKind = "agent"
)

// Node carries a kind, a capacity ceiling, and the payload content slot.
type Node[P Payload] struct {
	ID       sim.NodeID
	Kind     NodeKind
	Capacity float64
	Payload  P
}

// Edge is a weighted directed connection between two nodes.
type Edge struct {
	ID       sim.EdgeID
	Source   sim.NodeID
	Target   sim.NodeID
	Weight   float64
	Distance float64
	Kind     string
}

// Topology stores nodes and edges and offers deterministic iteration.
type Topology[P Payload] struct {
	nodes map[sim.NodeID]*Node[P]
	out   map[sim.NodeID][]Edge
}

// NewTopology creates an empty topology.
func NewTopology[P Payload]() *Topology[P] {
	return &Topology[P]{
		nodes: make(map[sim.NodeID]*Node[P]),
		out:   make(map[sim.NodeID][]Edge),
	}
}

// AddNode inserts a node. Node ids are unique.
func (t *Topology[P]) AddNode(n Node[P]) error {
	if n.ID == "" {
		return sim.ErrIdentifierEmpty
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrNodeExists
	}
	stored := n
	t.nodes[n.ID] = &stored
	return nil
}

// AddEdge inserts a directed edge. Both endpoints must exist, the weight
// must be within [0, 1], and the distance must be positive.
func (t *Topology[P]) AddEdge(e Edge) error {
	if _, ok := t.nodes[e.Source]; !ok {
		return ErrNodeUnknown
	}
	if _, ok := t.nodes[e.Target]; !ok {
		return ErrNodeUnknown
	}
	if e.Source == e.Target || e.Distance <= 0 {
		return ErrEdgeInvalid
	}
	if e.Weight < 0 || e.Weight > 1 {
		return ErrWeightRange
	}
	t.out[e.Source] = append(t.out[e.Source], e)
	return nil
}

// Node returns the node for an id.
func (t *Topology[P]) Node(id sim.NodeID) (*Node[P], error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, ErrNodeUnknown
	}
	return n, nil
}

// Neighbors returns the outgoing edges of a node in insertion order.
func (t *Topology[P]) Neighbors(id sim.NodeID) []Edge {
	return t.out[id]
}

// NeighborsWithin returns outgoing edges no farther than reach. A reach at
// or below zero means unbounded.
func (t *Topology[P]) NeighborsWithin(id sim.NodeID, reach float64) []Edge {
	edges := t.out[id]
	if reach <= 0 {
		return edges
	}
	var within []Edge
	for _, e := range edges {
		if e.Distance <= reach {
			within = append(within, e)
		}
	}
	return within
}

// NodeIDs returns all node ids in lexicographic order. Passes iterate this
// order so runs are reproducible.
func (t *Topology[P]) NodeIDs() []sim.NodeID {
	ids := make([]sim.NodeID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports the number of nodes.
func (t *Topology[P]) Len() int {
	return len(t.nodes)
}

type topologyWire[P Payload] struct {
	Nodes []Node[P] `json:"nodes"`
	Edges []Edge    `json:"edges"`
}

// MarshalJSON encodes nodes and edges in deterministic order so snapshots of
// equal topologies are byte-identical.
func (t *Topology[P]) MarshalJSON() ([]byte, error) {
	var wire topologyWire[P]
	for _, id := range t.NodeIDs() {
		wire.Nodes = append(wire.Nodes, *t.nodes[id])
		wire.Edges = append(wire.Edges, t.out[id]...)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON replaces the topology with the encoded nodes and edges.
func (t *Topology[P]) UnmarshalJSON(data []byte) error {
	var wire topologyWire[P]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	restored := NewTopology[P]()
	for _, n := range wire.Nodes {
		if err := restored.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range wire.Edges {
		if err := restored.AddEdge(e); err != nil {
			return err
		}
	}
	*t = *restored
	return nil
}
