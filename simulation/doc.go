// Package simulation implements the Epoch Driver: it owns a simgraph.Graph,
// the tag-group/orphan bookkeeping, the population lists, and a roster of
// shepherd.Channel connections, and advances all of them together one epoch
// at a time.
//
// A Simulation is constructed once via New (which seeds the initial
// population and performs the introduction broadcast) and then advanced
// repeatedly via SimulateEpoch, finishing with Stop. Within an epoch,
// shepherds are driven strictly one at a time, in roster order, and every
// shepherd sees its full BeginEpoch/SheepIntroduction picture before any
// FeedRequest is sent to it.
package simulation
