package fraud

// Graph is a directed graph of observed sender->receiver pairs, kept as an
// adjacency set: repeated transfers between the same pair collapse to one
// edge, and edges are never removed.
//
// Graph is not safe for concurrent use; the engine serializes access.
type Graph struct {
	adjacency map[uint]map[uint]struct{}
}

// NewGraph creates an empty fraud graph.
func NewGraph() *Graph {
	return &Graph{
		adjacency: make(map[uint]map[uint]struct{}),
	}
}

// Observe records the directed edge sender->receiver. Observing the same
// pair again is a no-op.
func (g *Graph) Observe(sender, receiver uint) {
	receivers, ok := g.adjacency[sender]
	if !ok {
		receivers = make(map[uint]struct{})
		g.adjacency[sender] = receivers
	}
	receivers[receiver] = struct{}{}
}

// OutDegree returns the number of distinct receivers directly reachable
// from v, or 0 for an unknown vertex.
func (g *Graph) OutDegree(v uint) int {
	return len(g.adjacency[v])
}

// Vertex colors for the cycle walk.
const (
	colorUnseen  = iota // never visited
	colorOnPath         // on the current DFS path
	colorDone           // fully explored
)

// frame is one explicit DFS stack entry: a vertex plus a cursor into its
// neighbor list.
type frame struct {
	vertex    uint
	neighbors []uint
	next      int
}

// HasCycleFrom reports whether any directed cycle is reachable from origin.
// The walk is an iterative three-color depth-first search; a cycle exists
// the moment a neighbor already on the current path is re-encountered.
// The explicit frame stack keeps adversarial graphs from blowing the
// goroutine stack.
func (g *Graph) HasCycleFrom(origin uint) bool {
	color := make(map[uint]int, len(g.adjacency))

	stack := []frame{{vertex: origin, neighbors: g.neighborsOf(origin)}}
	color[origin] = colorOnPath

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next >= len(top.neighbors) {
			color[top.vertex] = colorDone
			stack = stack[:len(stack)-1]
			continue
		}

		n := top.neighbors[top.next]
		top.next++

		switch color[n] {
		case colorOnPath:
			return true
		case colorUnseen:
			color[n] = colorOnPath
			stack = append(stack, frame{vertex: n, neighbors: g.neighborsOf(n)})
		}
	}

	return false
}

func (g *Graph) neighborsOf(v uint) []uint {
	receivers := g.adjacency[v]
	if len(receivers) == 0 {
		return nil
	}
	out := make([]uint, 0, len(receivers))
	for r := range receivers {
		out = append(out, r)
	}
	return out
}
