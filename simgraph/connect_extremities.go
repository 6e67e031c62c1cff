package simgraph

import (
	"math/rand"

	"github.com/nodeflock/shepherdsim/ids"
)

// Bounds is an inclusive [Min, Max] range used to draw a random edge count.
type Bounds struct {
	Min int64
	Max int64
}

// ConnectExtremities wires each source node (a sheep or item) to a random
// subset of the candidate tags, with a single weighted edge per chosen
// tag. For each source, a count k is drawn uniformly from bounds and k
// distinct tags are chosen uniformly without replacement from candidates
// (clamped to len(candidates) if bounds exceeds the pool). Edges run
// source->tag by default, or tag->source if reverse is true; either way
// the source is recorded as associated with the chosen tag for
// AssociatedTags.
func ConnectExtremities[K ids.IsItemOrSheep](g *Graph, rng *rand.Rand, sources []ids.GraphID[K], candidates []ids.TagID, bounds Bounds, reverse bool) error {
	if bounds.Min > bounds.Max {
		return ErrEmptyBounds
	}
	if len(candidates) == 0 {
		return nil
	}

	for _, s := range sources {
		k := randInRange(rng, bounds.Min, bounds.Max)
		if int(k) > len(candidates) {
			k = int64(len(candidates))
		}

		pool := append([]ids.TagID(nil), candidates...)
		shuffleTags(rng, pool)
		chosen := pool[:k]

		sourceKey := keyOf(s)
		for _, t := range chosen {
			w := randWeight(rng, extremityWeightMin, extremityWeightMax)
			tagKey := keyOf(t)

			var err error
			if reverse {
				err = g.addEdge(tagKey, sourceKey, w)
			} else {
				err = g.addEdge(sourceKey, tagKey, w)
			}
			if err != nil {
				return err
			}

			g.linkTag(sourceKey, tagKey)
		}
	}

	return nil
}
