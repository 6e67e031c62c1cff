// Package simgraph implements the simulation graph: a weighted directed
// multigraph over tag, sheep, and item nodes, plus the stochastic
// operations that grow its tag topology and wire sheep/items onto it.
//
// Storage is delegated to github.com/nodeflock/shepherdsim/core; nodes are
// addressed externally by ids.GraphID[K] and internally by a short string
// key ("t0", "s3", "i12", ...) so core.Graph's string-keyed vertices and
// edges can be reused unchanged. Shortest-path queries delegate to
// github.com/nodeflock/shepherdsim/dijkstra.
//
// Every stochastic operation takes an explicit *rand.Rand; nothing in this
// package reaches for a process-global source of randomness, so callers
// can make any sequence of operations reproducible by fixing a seed.
package simgraph
