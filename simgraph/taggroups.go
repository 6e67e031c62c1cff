package simgraph

import "github.com/nodeflock/shepherdsim/ids"

// TagGroup is a clique-like subset of tags, pairwise connected by family-1
// edges at formation time. Groups only ever gain members.
type TagGroup struct {
	members []ids.TagID
	set     map[ids.TagID]struct{}
}

func newTagGroup() *TagGroup {
	return &TagGroup{set: make(map[ids.TagID]struct{})}
}

func (tg *TagGroup) add(id ids.TagID) {
	if _, ok := tg.set[id]; ok {
		return
	}
	tg.set[id] = struct{}{}
	tg.members = append(tg.members, id)
}

func (tg *TagGroup) addAll(newMembers []ids.TagID) {
	for _, id := range newMembers {
		tg.add(id)
	}
}

// Members returns the group's tags in the order they were added. The
// returned slice must not be mutated by the caller.
func (tg *TagGroup) Members() []ids.TagID {
	return tg.members
}

// Contains reports whether id is a member of the group.
func (tg *TagGroup) Contains(id ids.TagID) bool {
	_, ok := tg.set[id]

	return ok
}

// Len returns the number of tags in the group.
func (tg *TagGroup) Len() int {
	return len(tg.members)
}

// OrphanSet holds tags that were not placed into any group at the time
// they were introduced. A tag is always in exactly one group or in the
// orphan set, never both, never neither.
type OrphanSet struct {
	members []ids.TagID
	set     map[ids.TagID]struct{}
}

// NewOrphanSet returns an empty orphan set.
func NewOrphanSet() *OrphanSet {
	return &OrphanSet{set: make(map[ids.TagID]struct{})}
}

func (o *OrphanSet) add(id ids.TagID) {
	if _, ok := o.set[id]; ok {
		return
	}
	o.set[id] = struct{}{}
	o.members = append(o.members, id)
}

// Len returns the number of orphaned tags.
func (o *OrphanSet) Len() int {
	return len(o.members)
}

// Members returns the orphaned tags in the order they joined the set. The
// returned slice must not be mutated by the caller.
func (o *OrphanSet) Members() []ids.TagID {
	return o.members
}

// Contains reports whether id is currently orphaned.
func (o *OrphanSet) Contains(id ids.TagID) bool {
	_, ok := o.set[id]

	return ok
}

// Drain removes and returns every tag currently in the set, resetting it
// to empty. Used when the orphan count crosses the configured threshold
// and its members are re-partitioned into new groups.
func (o *OrphanSet) Drain() []ids.TagID {
	snapshot := o.members
	o.members = nil
	o.set = make(map[ids.TagID]struct{})

	return snapshot
}

func sortTagIDs(t []ids.TagID) {
	// Small groups and associated-tag lists; insertion sort keeps this
	// dependency-free and is plenty fast at the sizes involved.
	for i := 1; i < len(t); i++ {
		for j := i; j > 0 && t[j-1].Index() > t[j].Index(); j-- {
			t[j-1], t[j] = t[j], t[j-1]
		}
	}
}
