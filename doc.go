// Command-free package shepherdsim documents the module as a whole; the
// runnable entry points live under cmd/.
//
// shepherdsim simulates a tag/item/sheep recommendation ecosystem against
// one or more external "shepherd" recommender subprocesses, driven over a
// line-oriented JSON event protocol:
//
//	ids/        — typed dense node identifiers (Tag/Sheep/Item/Epoch/Shepherd)
//	core/       — the underlying thread-safe weighted multigraph primitive
//	dijkstra/   — shortest-path search over core.Graph
//	simgraph/   — the Simulation Graph Engine built on core+dijkstra
//	response/   — the Response Model (distance-to-rating probability)
//	shepherd/   — the Shepherd Channel and wire protocol
//	simulation/ — the Epoch Driver tying graph, response model and channels together
//	cmd/        — the host CLI and two reference shepherd implementations
package shepherdsim
