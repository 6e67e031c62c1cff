package simgraph

import (
	"fmt"
	"math"

	"github.com/nodeflock/shepherdsim/dijkstra"

	"github.com/nodeflock/shepherdsim/ids"
)

// ShortestPathDistance returns the sum of edge weights along the
// minimum-weight directed path from "from" to "to", and whether such a
// path exists. The graph is never symmetrized: a path requires a chain of
// edges in the direction they were stored.
func ShortestPathDistance(g *Graph, from, to ids.Ref) (int64, bool, error) {
	distance, _, ok, err := shortestPath(g, from, to, false)

	return distance, ok, err
}

// ShortestPathWithHops is the extended form of ShortestPathDistance: it
// additionally reports the number of edges (hops) along the minimum-weight
// path, present iff a path exists.
func ShortestPathWithHops(g *Graph, from, to ids.Ref) (distance int64, hops int, ok bool, err error) {
	return shortestPath(g, from, to, true)
}

func shortestPath(g *Graph, from, to ids.Ref, withHops bool) (int64, int, bool, error) {
	fromKey := nodeKey(from.Kind(), from.Index())
	toKey := nodeKey(to.Kind(), to.Index())

	opts := []dijkstra.Option{dijkstra.Source(fromKey)}
	if withHops {
		opts = append(opts, dijkstra.WithReturnPath())
	}

	dist, prev, err := dijkstra.Dijkstra(g.inner, opts...)
	if err != nil {
		return 0, 0, false, fmt.Errorf("simgraph: shortest path %s->%s: %w", fromKey, toKey, err)
	}

	d, ok := dist[toKey]
	if !ok || d == math.MaxInt64 {
		return 0, 0, false, nil
	}

	if !withHops {
		return d, 0, true, nil
	}

	return d, countHops(prev, fromKey, toKey), true, nil
}

// countHops walks the predecessor chain from toKey back to fromKey,
// counting the edges traversed.
func countHops(prev map[string]string, fromKey, toKey string) int {
	hops := 0
	cur := toKey
	for cur != fromKey {
		p, ok := prev[cur]
		if !ok || p == "" {
			return hops
		}
		cur = p
		hops++
	}

	return hops
}
