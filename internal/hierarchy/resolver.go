package hierarchy

// Options tunes Resolve.
type Options struct {
	OnDanglingParent DanglingPolicy
}

// Resolve assigns every node a zero-based level and groups nodes by level.
//
// A root is level 0. Any other node sits one below its parent. A parent id
// that names no node ends the climb there, so the orphan lands on level 1
// (or Resolve fails, under RejectDangling). Each ancestor chain is walked
// once; depths found along the way are reused by later nodes.
func Resolve(nodes []Node, opts Options) (*Forest, error) {
	f := newForest(len(nodes))
	for _, n := range nodes {
		id := n.NodeID()
		if _, dup := f.nodes[id]; dup {
			return nil, &DuplicateIDError{ID: id}
		}
		f.nodes[id] = n
	}

	for _, n := range nodes {
		if _, done := f.depth[n.NodeID()]; done {
			continue
		}
		if err := f.climb(n, opts.OnDanglingParent); err != nil {
			return nil, err
		}
	}

	for _, n := range nodes {
		d := f.depth[n.NodeID()]
		f.levels[d] = append(f.levels[d], n)
		if f.HasParent(n) {
			f.children[n.ParentNodeID()] = append(f.children[n.ParentNodeID()], n)
		}
	}
	f.count = len(nodes)
	f.sortLevels()
	return f, nil
}

// climb walks from n towards its root until it reaches a node whose depth is
// already known, a root, or a missing parent, then fills in the depths of
// every node it passed.
func (f *Forest) climb(n Node, policy DanglingPolicy) error {
	var chain []Node
	onChain := make(map[string]struct{})

	// base is the depth of whatever sits just above chain's last element.
	base := 0
	cur := n
	for {
		if d, ok := f.depth[cur.NodeID()]; ok {
			base = d
			break
		}
		if _, seen := onChain[cur.NodeID()]; seen {
			ids := make([]string, 0, len(chain)+1)
			for _, c := range chain {
				ids = append(ids, c.NodeID())
			}
			return &CycleError{Chain: append(ids, cur.NodeID())}
		}
		chain = append(chain, cur)
		onChain[cur.NodeID()] = struct{}{}

		pid := cur.ParentNodeID()
		if pid == "" {
			base = -1
			break
		}
		parent, ok := f.nodes[pid]
		if !ok {
			if policy == RejectDangling {
				return &DanglingParentError{NodeID: cur.NodeID(), ParentID: pid}
			}
			break
		}
		cur = parent
	}

	for i := len(chain) - 1; i >= 0; i-- {
		f.depth[chain[i].NodeID()] = base + len(chain) - i
	}
	return nil
}
