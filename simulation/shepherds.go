package simulation

import (
	"sort"

	"github.com/nodeflock/shepherdsim/ids"
	"github.com/nodeflock/shepherdsim/shepherd"
)

// Channel is the subset of *shepherd.Channel's method set the driver needs.
// Accepting an interface rather than the concrete type lets tests exercise
// the epoch-advance logic against an in-process fake instead of a real
// subprocess.
type Channel interface {
	BeginEpoch(epoch ids.EpochID, tags []ids.TagID, items []ids.ItemID) error
	SheepIntroduction(sheep ids.SheepID, associatedTags []ids.TagID) error
	FeedRequest(sheep ids.SheepID) error
	ReadFeed() ([]ids.ItemID, error)
	SendResponses(sheep ids.SheepID, responses []shepherd.Response) error
	Stop() error
}

// registeredShepherd pairs a live wire channel with the seen-map tracking,
// per sheep, every item this shepherd has ever fed that sheep.
type registeredShepherd struct {
	id      ids.ShepherdID
	channel Channel
	seen    map[ids.SheepID]map[ids.ItemID]struct{}
}

func newRegisteredShepherd(id ids.ShepherdID, ch Channel) *registeredShepherd {
	return &registeredShepherd{
		id:      id,
		channel: ch,
		seen:    make(map[ids.SheepID]map[ids.ItemID]struct{}),
	}
}

// markSeen unions feed into the seen-set for sheep. An item appears in the
// seen-set if and only if it was part of some prior feed from this
// shepherd to this sheep.
func (r *registeredShepherd) markSeen(sheep ids.SheepID, feed []ids.ItemID) {
	set := r.seen[sheep]
	if set == nil {
		set = make(map[ids.ItemID]struct{}, len(feed))
		r.seen[sheep] = set
	}

	for _, item := range feed {
		set[item] = struct{}{}
	}
}

// SeenItems returns, for inspection or testing, the sorted set of items
// this shepherd has ever fed the given sheep.
func (r *registeredShepherd) SeenItems(sheep ids.SheepID) []ids.ItemID {
	set := r.seen[sheep]
	out := make([]ids.ItemID, 0, len(set))
	for item := range set {
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })

	return out
}
