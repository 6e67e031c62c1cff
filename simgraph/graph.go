package simgraph

import (
	"fmt"
	"strconv"

	"github.com/nodeflock/shepherdsim/core"

	"github.com/nodeflock/shepherdsim/ids"
)

// Weight bounds for the three edge families: two within-group tag-edge
// families, and a third shared by sheep/item extremity edges.
const (
	family1WeightMin = 5
	family1WeightMax = 10

	family2WeightMin = 1
	family2WeightMax = 5

	extremityWeightMin = 1
	extremityWeightMax = 10

	// crossGroupEdgeProbability is the per-pair Bernoulli probability used
	// by both AddNewTagGroups and AddToTagGroups when wiring sparse
	// family-2 edges between groups.
	crossGroupEdgeProbability = 1e-3
)

// Graph is the simulation's node/edge store: a weighted directed multigraph
// over tag, sheep, and item nodes. The zero value is not usable; construct
// with New.
type Graph struct {
	inner *core.Graph

	// counts[k] is the next dense index to hand out for node kind k.
	counts [3]int

	// tagAdj[nodeKey] is the set of tag node keys directly incident to a
	// sheep or item node key, in either edge direction. core.Graph's own
	// Neighbors is direction-sensitive (it only returns edges where
	// e.From == id for directed edges), so it cannot answer "associated
	// tags" on its own when an extremity edge runs tag->sheep; this index
	// is populated alongside ConnectExtremities and exists only to answer
	// that direction-agnostic query in O(1).
	tagAdj map[string]map[string]struct{}
}

// New constructs an empty simulation graph.
func New() *Graph {
	return &Graph{
		inner:  core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges()),
		tagAdj: make(map[string]map[string]struct{}),
	}
}

// NodeCount returns the number of nodes of the given kind created so far.
func (g *Graph) NodeCount(kind ids.Kind) int {
	return g.counts[kind]
}

// EdgeCount returns the total number of directed edges currently stored,
// across every node kind and edge family.
func (g *Graph) EdgeCount() int {
	return g.inner.EdgeCount()
}

// nodeKey renders a (kind, index) pair as the core.Graph vertex ID used to
// store that node. The kind is encoded as a one-byte prefix and never
// reinterpreted by any reader of the key.
func nodeKey(kind ids.Kind, index int) string {
	var prefix byte
	switch kind {
	case ids.KindTag:
		prefix = 't'
	case ids.KindSheep:
		prefix = 's'
	case ids.KindItem:
		prefix = 'i'
	default:
		prefix = '?'
	}

	return string(prefix) + strconv.Itoa(index)
}

// keyOf renders the node key for any typed GraphID.
func keyOf[K ids.NodeKind](id ids.GraphID[K]) string {
	return nodeKey(id.Kind(), id.Index())
}

// parseNodeKey recovers the (kind, index) pair encoded in a node key
// produced by nodeKey. It is only ever applied to keys this package wrote
// itself, so a parse failure indicates an internal inconsistency.
func parseNodeKey(key string) (ids.Kind, int, error) {
	if len(key) < 2 {
		return 0, 0, fmt.Errorf("simgraph: malformed node key %q", key)
	}

	var kind ids.Kind
	switch key[0] {
	case 't':
		kind = ids.KindTag
	case 's':
		kind = ids.KindSheep
	case 'i':
		kind = ids.KindItem
	default:
		return 0, 0, fmt.Errorf("simgraph: malformed node key %q", key)
	}

	index, err := strconv.Atoi(key[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("simgraph: malformed node key %q: %w", key, err)
	}

	return kind, index, nil
}

// addEdge adds a single directed weighted edge between two node keys,
// wrapping any core error with the endpoints for context.
func (g *Graph) addEdge(from, to string, weight int64) error {
	if _, err := g.inner.AddEdge(from, to, weight); err != nil {
		return fmt.Errorf("simgraph: add edge %s->%s: %w", from, to, err)
	}

	return nil
}

// linkTag records that nodeKey is directly connected to tagKey, in either
// edge direction, for AssociatedTags lookups.
func (g *Graph) linkTag(nodeKey, tagKey string) {
	set := g.tagAdj[nodeKey]
	if set == nil {
		set = make(map[string]struct{})
		g.tagAdj[nodeKey] = set
	}
	set[tagKey] = struct{}{}
}
