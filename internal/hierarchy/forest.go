package hierarchy

import "sort"

// Forest is the resolved view of a node collection: every node's depth,
// nodes grouped per depth, and the parent→children adjacency.
// It is immutable once built; a changed collection is resolved again.
type Forest struct {
	nodes    map[string]Node   // id → Node
	depth    map[string]int    // id → level
	levels   map[int][]Node    // level → nodes in input order
	children map[string][]Node // parent id → children in input order
	order    []int             // present levels, ascending
	count    int
}

func newForest(n int) *Forest {
	return &Forest{
		nodes:    make(map[string]Node, n),
		depth:    make(map[string]int, n),
		levels:   make(map[int][]Node),
		children: make(map[string][]Node),
	}
}

// Node returns a node by id (nil if absent).
func (f *Forest) Node(id string) Node {
	return f.nodes[id]
}

// Depth returns the resolved level of id.
func (f *Forest) Depth(id string) (int, bool) {
	d, ok := f.depth[id]
	return d, ok
}

// Level returns the nodes on level d, in input order.
func (f *Forest) Level(d int) []Node {
	return f.levels[d]
}

// Levels returns the present levels in ascending order.
func (f *Forest) Levels() []int {
	return f.order
}

// Children returns the direct children of id.
func (f *Forest) Children(id string) []Node {
	return f.children[id]
}

// HasParent reports whether n's parent id resolves to a node in the forest.
func (f *Forest) HasParent(n Node) bool {
	pid := n.ParentNodeID()
	if pid == "" {
		return false
	}
	_, ok := f.nodes[pid]
	return ok
}

// NodeCount returns the number of resolved nodes.
func (f *Forest) NodeCount() int {
	return f.count
}

func (f *Forest) sortLevels() {
	f.order = make([]int, 0, len(f.levels))
	for d := range f.levels {
		f.order = append(f.order, d)
	}
	sort.Ints(f.order)
}
