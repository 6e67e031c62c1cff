package simgraph

import "github.com/nodeflock/shepherdsim/ids"

// AssociatedTags returns the tags directly connected to a sheep or item
// node by an incident extremity edge, in either direction, sorted by
// index. The IsItemOrSheep constraint rules out calling this with a TagID
// at compile time.
func AssociatedTags[K ids.IsItemOrSheep](g *Graph, id ids.GraphID[K]) []ids.TagID {
	tagKeys := g.tagAdj[keyOf(id)]
	if len(tagKeys) == 0 {
		return nil
	}

	out := make([]ids.TagID, 0, len(tagKeys))
	for key := range tagKeys {
		_, index, err := parseNodeKey(key)
		if err != nil {
			// tagAdj is only ever populated by this package with keys it
			// generated itself; a parse failure here is unreachable.
			continue
		}
		out = append(out, ids.NewTagID(index))
	}

	sortTagIDs(out)

	return out
}
