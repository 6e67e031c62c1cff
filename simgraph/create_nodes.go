package simgraph

import (
	"fmt"

	"github.com/nodeflock/shepherdsim/ids"
)

// CreateNodes allocates n fresh nodes of kind K and returns their ids.
// Ids are dense and contiguous with respect to the kind's prior node count:
// after CreateNodes returns, NodeCount(kind) has increased by exactly n.
func CreateNodes[K ids.NodeKind](g *Graph, n int) ([]ids.GraphID[K], error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}

	var zero ids.GraphID[K]
	kind := zero.Kind()

	out := make([]ids.GraphID[K], 0, n)
	for i := 0; i < n; i++ {
		index := g.counts[kind]
		g.counts[kind] = index + 1

		id := ids.NewGraphID[K](index)
		if err := g.inner.AddVertex(keyOf(id)); err != nil {
			return nil, fmt.Errorf("simgraph: create node %s: %w", keyOf(id), err)
		}
		out = append(out, id)
	}

	return out, nil
}
