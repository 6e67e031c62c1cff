package simulation

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/response"
	"github.com/nodeflock/shepherdsim/shepherd"
	"github.com/nodeflock/shepherdsim/simgraph"
)

// Simulation drives a simgraph.Graph and a roster of shepherd channels
// through a sequence of epochs. Construct with New; advance with
// SimulateEpoch; finish with Stop. Not safe for concurrent use — the
// scheduling model is single-threaded and sequential by design.
type Simulation struct {
	settings Settings
	logger   zerolog.Logger

	currentEpoch ids.EpochID
	graph        *simgraph.Graph

	tags  []ids.TagID
	sheep []ids.SheepID
	items []ids.ItemID

	groups  []*simgraph.TagGroup
	orphans *simgraph.OrphanSet

	shepherds []*registeredShepherd
}

// Summary is the aggregated metadata returned by Stop.
type Summary struct {
	FinalEpoch  ids.EpochID
	Graph       *simgraph.Graph
	Tags        []ids.TagID
	Sheep       []ids.SheepID
	Items       []ids.ItemID
	Groups      []*simgraph.TagGroup
	Orphans     *simgraph.OrphanSet
	ShepherdIDs []ids.ShepherdID
}

// safeDiv returns a/b, or 0 if b is not positive, so a misconfigured
// AverageTagsPerGroup degrades to "form no groups yet" instead of a
// division-by-zero panic.
func safeDiv(a, b int) int {
	if b <= 0 {
		return 0
	}

	return a / b
}

// fireNewEpoch calls the configured hook, if any. The epoch boundary is
// logged by the caller.
func (s *Simulation) fireNewEpoch(epoch ids.EpochID, newTags []ids.TagID, newItems []ids.ItemID) {
	if s.settings.NewEpochHook != nil {
		s.settings.NewEpochHook(epoch, newTags, newItems)
	}
}

// broadcastEpoch sends BeginEpoch and then one SheepIntroduction per sheep
// in population to every registered shepherd, in roster order. All of a
// shepherd's introductions complete before the next shepherd is touched,
// and (by the caller) before any FeedRequest is sent to any shepherd.
func (s *Simulation) broadcastEpoch(epoch ids.EpochID, newTags []ids.TagID, newItems []ids.ItemID, population []ids.SheepID) error {
	for _, rs := range s.shepherds {
		if err := rs.channel.BeginEpoch(epoch, newTags, newItems); err != nil {
			return fmt.Errorf("simulation: broadcasting epoch %d to shepherd #%d: %w", epoch, rs.id, err)
		}

		for _, sheep := range population {
			tags := simgraph.AssociatedTags(s.graph, sheep)
			if err := rs.channel.SheepIntroduction(sheep, tags); err != nil {
				return fmt.Errorf("simulation: introducing sheep %s to shepherd #%d: %w", sheep, rs.id, err)
			}
		}
	}

	return nil
}

// New seeds a fresh simulation: it creates the initial tag/sheep/item
// population, forms the initial tag groups, wires extremities, and
// broadcasts the seeding epoch (id 0) to every shepherd channel, in that
// order.
func New(rng *rand.Rand, channels []Channel, settings Settings, logger zerolog.Logger) (*Simulation, error) {
	s := &Simulation{
		settings: settings,
		logger:   logger,
		graph:    simgraph.New(),
		orphans:  simgraph.NewOrphanSet(),
	}

	for i, ch := range channels {
		s.shepherds = append(s.shepherds, newRegisteredShepherd(ids.ShepherdID(i), ch))
	}

	tags, err := simgraph.CreateNodes[ids.TagKind](s.graph, settings.InitialNTagsBounds.draw(rng))
	if err != nil {
		return nil, fmt.Errorf("simulation: seeding tags: %w", err)
	}
	s.tags = tags

	maxGroups := safeDiv(len(s.tags), settings.AverageTagsPerGroup)
	if err := simgraph.AddNewTagGroups(s.graph, rng, &s.groups, s.orphans, maxGroups, s.tags); err != nil {
		return nil, fmt.Errorf("simulation: forming initial tag groups: %w", err)
	}

	sheep, err := simgraph.CreateNodes[ids.SheepKind](s.graph, settings.InitialNSheepBounds.draw(rng))
	if err != nil {
		return nil, fmt.Errorf("simulation: seeding sheep: %w", err)
	}
	s.sheep = sheep

	if err := simgraph.ConnectExtremities(s.graph, rng, s.sheep, s.tags, settings.NSheepTagsBounds, false); err != nil {
		return nil, fmt.Errorf("simulation: wiring sheep extremities: %w", err)
	}

	items, err := simgraph.CreateNodes[ids.ItemKind](s.graph, settings.InitialNItemsBounds.draw(rng))
	if err != nil {
		return nil, fmt.Errorf("simulation: seeding items: %w", err)
	}
	s.items = items

	if err := simgraph.ConnectExtremities(s.graph, rng, s.items, s.tags, settings.NItemTagsBounds, false); err != nil {
		return nil, fmt.Errorf("simulation: wiring item extremities: %w", err)
	}

	s.fireNewEpoch(s.currentEpoch, s.tags, s.items)

	if err := s.broadcastEpoch(s.currentEpoch, s.tags, s.items, s.sheep); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("n_tags", len(s.tags)).
		Int("n_sheep", len(s.sheep)).
		Int("n_items", len(s.items)).
		Int("n_groups", len(s.groups)).
		Msg("simulation seeded")

	return s, nil
}

// SimulateEpoch advances the simulation by one epoch: it grows the
// tag/item population, re-partitions drained orphans into new
// groups if the threshold was crossed, broadcasts the epoch to every
// shepherd, then runs the feed/response cycle for every (shepherd, sheep)
// pair in roster/population order.
func (s *Simulation) SimulateEpoch(rng *rand.Rand) error {
	newTags, err := simgraph.CreateNodes[ids.TagKind](s.graph, s.settings.NTagsBounds.draw(rng))
	if err != nil {
		return fmt.Errorf("simulation: creating new tags: %w", err)
	}

	if err := simgraph.AddToTagGroups(s.graph, rng, &s.groups, s.orphans, newTags); err != nil {
		return fmt.Errorf("simulation: attaching new tags to groups: %w", err)
	}
	s.tags = append(s.tags, newTags...)

	if s.orphans.Len() >= s.settings.OrphanedTagThreshold {
		snapshot := s.orphans.Drain()
		maxGroups := safeDiv(len(snapshot), s.settings.AverageTagsPerGroup)
		if err := simgraph.AddNewTagGroups(s.graph, rng, &s.groups, s.orphans, maxGroups, snapshot); err != nil {
			return fmt.Errorf("simulation: draining orphans into new groups: %w", err)
		}
	}

	newItems, err := simgraph.CreateNodes[ids.ItemKind](s.graph, s.settings.NItemsBounds.draw(rng))
	if err != nil {
		return fmt.Errorf("simulation: creating new items: %w", err)
	}

	if err := simgraph.ConnectExtremities(s.graph, rng, newItems, s.tags, s.settings.NItemTagsBounds, false); err != nil {
		return fmt.Errorf("simulation: wiring new item extremities: %w", err)
	}
	s.items = append(s.items, newItems...)

	s.currentEpoch++

	s.fireNewEpoch(s.currentEpoch, newTags, newItems)

	s.logger.Info().
		Int("n_tags", len(s.tags)).
		Int("n_orphans", s.orphans.Len()).
		Int("n_groups", len(s.groups)).
		Int("n_items", len(s.items)).
		Int("n_sheep", len(s.sheep)).
		Float64("p_edges", s.edgeDensity()).
		Msg("epoch advanced")

	if err := s.broadcastEpoch(s.currentEpoch, newTags, newItems, s.sheep); err != nil {
		return err
	}

	for _, rs := range s.shepherds {
		for _, sheep := range s.sheep {
			if err := s.runFeedCycle(rng, rs, sheep); err != nil {
				return err
			}
		}
	}

	return nil
}

// edgeDensity computes 2|E| / (|V|(|V|-1)), the density of an undirected
// simple graph with the same vertex count. |V|<2 reports 0 rather than
// dividing by zero.
func (s *Simulation) edgeDensity() float64 {
	v := s.graph.NodeCount(ids.KindTag) + s.graph.NodeCount(ids.KindSheep) + s.graph.NodeCount(ids.KindItem)
	if v < 2 {
		return 0
	}

	e := s.graph.EdgeCount()

	return (2 * float64(e)) / (float64(v) * float64(v-1))
}

// runFeedCycle requests one feed from rs for sheep, rates it, fires the two
// feed hooks, and sends the responses back — the per-(shepherd,sheep) body
// of a single epoch's feed/response pass.
func (s *Simulation) runFeedCycle(rng *rand.Rand, rs *registeredShepherd, sheep ids.SheepID) error {
	if err := rs.channel.FeedRequest(sheep); err != nil {
		return fmt.Errorf("simulation: requesting feed from shepherd #%d for sheep %s: %w", rs.id, sheep, err)
	}

	feed, err := rs.channel.ReadFeed()
	if err != nil {
		return fmt.Errorf("simulation: reading feed from shepherd #%d for sheep %s: %w", rs.id, sheep, err)
	}

	rs.markSeen(sheep, feed)

	if s.settings.FeedGenerationHook != nil {
		s.settings.FeedGenerationHook(rs.id, sheep, feed)
	}

	responses := make([]shepherd.Response, 0, len(feed))
	for _, item := range feed {
		distance, hops, reachable, err := simgraph.ShortestPathWithHops(s.graph, sheep, item)
		if err != nil {
			return fmt.Errorf("simulation: rating item %s for sheep %s: %w", item, sheep, err)
		}

		rating := response.Rate(rng, sheep, item, distance, reachable, s.logger)

		r := shepherd.Response{Item: item, Rating: rating}
		if reachable {
			h := hops
			r.Hops = &h
		}

		responses = append(responses, r)
	}

	if s.settings.FeedRatedHook != nil {
		s.settings.FeedRatedHook(rs.id, sheep, responses)
	}

	if err := rs.channel.SendResponses(sheep, responses); err != nil {
		return fmt.Errorf("simulation: sending responses to shepherd #%d for sheep %s: %w", rs.id, sheep, err)
	}

	return nil
}

// Stop tears down every shepherd (closing its input and waiting for exit,
// in roster order) and returns the aggregated final state. Stopping
// consumes the simulation: the returned Summary is the only valid way to
// keep using its graph and population data afterward.
func (s *Simulation) Stop() (Summary, error) {
	shepherdIDs := make([]ids.ShepherdID, 0, len(s.shepherds))
	for _, rs := range s.shepherds {
		if err := rs.channel.Stop(); err != nil {
			return Summary{}, fmt.Errorf("simulation: stopping shepherd #%d: %w", rs.id, err)
		}
		shepherdIDs = append(shepherdIDs, rs.id)
	}

	return Summary{
		FinalEpoch:  s.currentEpoch,
		Graph:       s.graph,
		Tags:        s.tags,
		Sheep:       s.sheep,
		Items:       s.items,
		Groups:      s.groups,
		Orphans:     s.orphans,
		ShepherdIDs: shepherdIDs,
	}, nil
}
