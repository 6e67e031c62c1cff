package simgraph

import (
	"fmt"
	"math/rand"

	"github.com/nodeflock/shepherdsim/ids"
)

// AddNewTagGroups partitions tags into at most maxGroups fresh TagGroups,
// appends them to *groups, and routes any tags it could not place into
// orphans. It forms family-1 edges inside every new group and, with low
// probability, sparse family-2 edges between pairs of new groups.
//
// If tags is empty or maxGroups == 0, no groups are formed and no tags are
// added to orphans. Returns ErrNumericDomain (wrapped) if the resulting
// Poisson rate is negative, NaN, or infinite.
func AddNewTagGroups(g *Graph, rng *rand.Rand, groups *[]*TagGroup, orphans *OrphanSet, maxGroups int, tags []ids.TagID) error {
	if len(tags) == 0 || maxGroups == 0 {
		return nil
	}

	shuffled := append([]ids.TagID(nil), tags...)
	shuffleTags(rng, shuffled)

	lambda := float64(len(shuffled)) / float64(maxGroups+5)
	if err := checkPoissonRate(lambda); err != nil {
		return fmt.Errorf("simgraph: add new tag groups: lambda=%v: %w", lambda, err)
	}

	remaining := shuffled
	formed := make([]*TagGroup, 0, maxGroups)
	for i := 0; i < maxGroups && len(remaining) > 0; i++ {
		n := samplePoisson(rng, lambda)
		if n > len(remaining) {
			n = len(remaining)
		}

		tg := newTagGroup()
		tg.addAll(remaining[:n])
		formed = append(formed, tg)
		remaining = remaining[n:]
	}

	for _, t := range remaining {
		orphans.add(t)
	}

	for _, tg := range formed {
		if err := g.connectGroupInternal(rng, tg); err != nil {
			return err
		}
	}

	for i := 0; i < len(formed); i++ {
		for j := i + 1; j < len(formed); j++ {
			if err := g.connectGroupsSparse(rng, formed[i], formed[j]); err != nil {
				return err
			}
		}
	}

	*groups = append(*groups, formed...)

	return nil
}

// connectGroupInternal adds family-1 edges (both directions, independent
// weights in [5,10]) between every unordered pair of distinct members of
// tg.
func (g *Graph) connectGroupInternal(rng *rand.Rand, tg *TagGroup) error {
	members := tg.Members()
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if err := g.addTagEdgePair(rng, members[i], members[j], family1WeightMin, family1WeightMax); err != nil {
				return err
			}
		}
	}

	return nil
}

// connectGroupsSparse adds family-2 edges (both directions, independent
// weights in [1,5]) between every cross-group pair (a,b) ∈ a×b, each
// independently with probability crossGroupEdgeProbability.
func (g *Graph) connectGroupsSparse(rng *rand.Rand, a, b *TagGroup) error {
	for _, x := range a.Members() {
		for _, y := range b.Members() {
			if rng.Float64() <= crossGroupEdgeProbability {
				if err := g.addTagEdgePair(rng, x, y, family2WeightMin, family2WeightMax); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// addTagEdgePair adds both (a->b) and (b->a) tag-tag edges, each with an
// independently drawn weight in [lo, hi].
func (g *Graph) addTagEdgePair(rng *rand.Rand, a, b ids.TagID, lo, hi int64) error {
	wAB := randWeight(rng, lo, hi)
	if err := g.addEdge(keyOf(a), keyOf(b), wAB); err != nil {
		return err
	}

	wBA := randWeight(rng, lo, hi)

	return g.addEdge(keyOf(b), keyOf(a), wBA)
}
