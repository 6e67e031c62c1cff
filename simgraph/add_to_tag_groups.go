package simgraph

import (
	"fmt"
	"math/rand"

	"github.com/nodeflock/shepherdsim/ids"
)

// AddToTagGroups attaches newTags to the k existing groups in *groups,
// building one candidate addition set per existing group and growing that
// group with it. Tags that don't fit any candidate set are routed to
// orphans. If newTags is empty, it returns immediately; an empty *groups
// (k == 0) routes every tag to orphans, since there is nothing to attach
// to.
//
// The cross-group wiring below is deliberately asymmetric: candidate set i
// only gets a chance to connect into existing group j for i<j, never the
// reverse.
func AddToTagGroups(g *Graph, rng *rand.Rand, groups *[]*TagGroup, orphans *OrphanSet, newTags []ids.TagID) error {
	if len(newTags) == 0 {
		return nil
	}

	existing := *groups
	k := len(existing)

	shuffled := append([]ids.TagID(nil), newTags...)
	shuffleTags(rng, shuffled)

	lambda := float64(len(shuffled)) / float64(k+50)
	if err := checkPoissonRate(lambda); err != nil {
		return fmt.Errorf("simgraph: add to tag groups: lambda=%v: %w", lambda, err)
	}

	additions := make([]*TagGroup, k)
	for i := range additions {
		additions[i] = newTagGroup()
	}

	remaining := shuffled
	for i := 0; i < k && len(remaining) > 0; i++ {
		n := samplePoisson(rng, lambda)
		if n > len(remaining) {
			n = len(remaining)
		}
		additions[i].addAll(remaining[:n])
		remaining = remaining[n:]
	}

	for _, t := range remaining {
		orphans.add(t)
	}

	for i := 0; i < k; i++ {
		if err := g.connectGroupInternal(rng, additions[i]); err != nil {
			return err
		}
		if err := g.connectAdditionToGroup(rng, additions[i], existing[i]); err != nil {
			return err
		}
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if err := g.connectGroupsSparse(rng, additions[i], existing[j]); err != nil {
				return err
			}
		}
	}

	for i := 0; i < k; i++ {
		existing[i].addAll(additions[i].Members())
	}

	return nil
}

// connectAdditionToGroup adds family-1 edges (both directions, weight
// [5,10]) between every member of a freshly built addition set and every
// member of the existing group it's joining.
func (g *Graph) connectAdditionToGroup(rng *rand.Rand, addition, target *TagGroup) error {
	for _, m := range addition.Members() {
		for _, t := range target.Members() {
			if err := g.addTagEdgePair(rng, m, t, family1WeightMin, family1WeightMax); err != nil {
				return err
			}
		}
	}

	return nil
}
