package model

// NodeView is a hydrated node: for nodes the stored record already contains
// everything a view needs, so a NodeView is just a NodeRecord.
type NodeView = NodeRecord

// WayView is a way hydrated against the node store: its NodeIDs resolved
// into an ordered sequence of NodeViews. References that can't be resolved
// are silently dropped (spec.md §3 invariants), so Nodes may be shorter
// than the originating WayRecord.NodeIDs.
type WayView struct {
	ID    int64
	Tags  map[string]string
	Info  Info
	Nodes []NodeView
}

// First returns the first node of the way, or the zero NodeView if empty.
func (w WayView) First() NodeView {
	if len(w.Nodes) == 0 {
		return NodeView{}
	}
	return w.Nodes[0]
}

// Last returns the last node of the way, or the zero NodeView if empty.
func (w WayView) Last() NodeView {
	if len(w.Nodes) == 0 {
		return NodeView{}
	}
	return w.Nodes[len(w.Nodes)-1]
}

// Reversed returns a copy of w with its node sequence reversed.
func (w WayView) Reversed() WayView {
	nodes := make([]NodeView, len(w.Nodes))
	for i, n := range w.Nodes {
		nodes[len(nodes)-1-i] = n
	}
	return WayView{ID: w.ID, Tags: w.Tags, Info: w.Info, Nodes: nodes}
}

// RelationView is a relation hydrated against the way and node stores.
type RelationView struct {
	ID    int64
	Tags  map[string]string
	Info  Info
	Ways  []WayView
	Stops []NodeView
}
