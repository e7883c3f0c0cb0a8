package graph

// WouldCreateCycle determines whether adding the edge "itemID depends on
// predecessorID" would close a loop in the predecessor graph.
//
// Returns nil if the edge is safe. Otherwise returns the cycle path the edge
// would create, starting and ending with itemID, e.g. given existing B→A,
// proposing A→B returns [A, B, A].
//
// The check is reverse reachability: if itemID can be reached from
// predecessorID by walking predecessor edges, then predecessorID already
// (transitively) depends on itemID and the new edge is illegal.
func WouldCreateCycle(g *Graph, itemID, predecessorID string) []string {
	// Self-reference is always a cycle; no traversal needed.
	if itemID == predecessorID {
		return []string{itemID, itemID}
	}

	visited := make(map[string]bool)
	var path []string
	if g.findPath(predecessorID, itemID, visited, &path) {
		return append([]string{itemID}, path...)
	}
	return nil
}

// findPath performs a DFS from current toward target along predecessor edges.
// The visited set guarantees termination and keeps diamond-shaped subgraphs
// from being re-explored: a node completed on one path cannot reach target
// via another, so skipping it cannot produce a false negative.
func (g *Graph) findPath(current, target string, visited map[string]bool, path *[]string) bool {
	if visited[current] {
		return false
	}
	visited[current] = true
	*path = append(*path, current)

	if current == target {
		return true
	}
	for _, e := range g.preds[current] {
		if g.findPath(e.PredecessorID, target, visited, path) {
			return true
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// DFS node colors for FindCycle.
const (
	white = 0 // unvisited
	gray  = 1 // on the current recursion path
	black = 2 // fully processed
)

// FindCycle scans the whole graph and returns one directed cycle as a path
// (first and last element equal), or nil if the graph is acyclic. The
// scheduler uses this as a defensive re-check; a non-nil result there means
// the commit protocol has a bug.
func FindCycle(g *Graph) []string {
	color := make(map[string]int)
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, e := range g.preds[id] {
			next := e.PredecessorID
			if color[next] == gray {
				// Back edge: slice the recursion stack from next onward.
				for i, s := range stack {
					if s == next {
						cycle = append(append(cycle, stack[i:]...), next)
						return true
					}
				}
				cycle = []string{next, id, next}
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, it := range g.Items() {
		if color[it.ID] == white && visit(it.ID) {
			return cycle
		}
	}
	return nil
}
