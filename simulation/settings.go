package simulation

import (
	"math/rand"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/shepherd"
	"github.com/nodeflock/shepherdsim/simgraph"
)

// CountBounds is an inclusive [Min, Max] range for a node-count draw
// (tags/sheep/items created at seeding or per epoch).
type CountBounds struct {
	Min int
	Max int
}

// draw returns a uniform integer in [b.Min, b.Max]. Min == Max draws that
// constant; Min > Max is treated the same way randInRange treats an
// inverted simgraph.Bounds, returning Min.
func (b CountBounds) draw(rng *rand.Rand) int {
	if b.Min >= b.Max {
		return b.Min
	}

	return b.Min + rng.Intn(b.Max-b.Min+1)
}

// NewEpochHook observes the start of every epoch (including the seeding
// epoch, id 0), given the tags and items introduced in it.
type NewEpochHook func(epoch ids.EpochID, newTags []ids.TagID, newItems []ids.ItemID)

// FeedGenerationHook observes a feed as soon as a shepherd has produced it
// for a sheep, before the Response Model runs.
type FeedGenerationHook func(shep ids.ShepherdID, sheep ids.SheepID, feed []ids.ItemID)

// FeedRatedHook observes the responses generated for a feed, before they
// are sent back to the shepherd that produced it.
type FeedRatedHook func(shep ids.ShepherdID, sheep ids.SheepID, responses []shepherd.Response)

// Settings holds every tunable bound plus the three optional observer
// hooks. The zero value has every hook unset (no-op) but Min==Max==0 on
// every bound, which is a valid (if degenerate) configuration — see
// DefaultSettings for the values used when none are supplied explicitly.
type Settings struct {
	InitialNTagsBounds  CountBounds
	InitialNSheepBounds CountBounds
	InitialNItemsBounds CountBounds

	NTagsBounds  CountBounds
	NItemsBounds CountBounds

	NSheepTagsBounds simgraph.Bounds
	NItemTagsBounds  simgraph.Bounds

	AverageTagsPerGroup  int
	OrphanedTagThreshold int

	NewEpochHook       NewEpochHook
	FeedGenerationHook FeedGenerationHook
	FeedRatedHook      FeedRatedHook
}

// DefaultSettings returns a reasonable set of reference bounds, suitable
// as a starting point for a CLI host that lets the operator override
// individual fields.
func DefaultSettings() Settings {
	return Settings{
		InitialNTagsBounds:   CountBounds{Min: 20, Max: 30},
		InitialNSheepBounds:  CountBounds{Min: 20, Max: 40},
		InitialNItemsBounds:  CountBounds{Min: 40, Max: 60},
		NTagsBounds:          CountBounds{Min: 0, Max: 1},
		NItemsBounds:         CountBounds{Min: 0, Max: 50},
		NSheepTagsBounds:     simgraph.Bounds{Min: 5, Max: 25},
		NItemTagsBounds:      simgraph.Bounds{Min: 5, Max: 7},
		AverageTagsPerGroup:  5,
		OrphanedTagThreshold: 50,
	}
}
