// File: methods_clone.go
// Role: Clearing graph instances.
// Concurrency:
//   - Clear acquires both write locks; no mutation of the source graph besides itself.
// AI-HINT (file):
//   - Clear() preserves flags but resets catalogs and counter.

package core

import "sync/atomic"

// Clear resets the graph to an empty state while preserving configuration flags.
//
// Behavior:
//   - Reinitializes vertices/edges/adjacency maps.
//   - Resets nextEdgeID to 0 (textual edge IDs will resume from "e1").
//   - Directed/Weighted/Multi/Loops/Mixed flags are preserved.
//
// Complexity: O(1) for map reallocation; no iteration over existing entries.
// Concurrency: acquires both write locks; not safe to call concurrently with readers.
func (g *Graph) Clear() {
	// AI-HINT: Resets vertices/edges/adjacency and nextEdgeID; configuration flags remain unchanged.
	g.muVert.Lock()
	g.muEdgeAdj.Lock()
	// reset maps
	g.vertices = make(map[string]*Vertex)
	g.edges = make(map[string]*Edge)
	g.adjacencyList = make(map[string]map[string]map[string]struct{})
	atomic.StoreUint64(&g.nextEdgeID, 0)
	g.muEdgeAdj.Unlock()
	g.muVert.Unlock()
}
