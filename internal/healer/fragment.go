package healer

import "github.com/cualbondi/osmptparser/internal/model"

// Fragment is one way's node sequence viewed as a candidate piece of a
// larger line (spec.md GLOSSARY).
type Fragment []model.NodeView

func (f Fragment) first() model.NodeView {
	return f[0]
}

func (f Fragment) last() model.NodeView {
	return f[len(f)-1]
}

func (f Fragment) reversed() Fragment {
	out := make(Fragment, len(f))
	for i, n := range f {
		out[len(out)-1-i] = n
	}
	return out
}

// sameNode compares by id alone, per spec.md §3: "Node equality is defined
// by id alone".
func sameNode(a, b model.NodeView) bool {
	return a.ID == b.ID
}

// fragmentsFromWays flattens an ordered sequence of WayViews into the
// Fragment slice the state machine operates on, one Fragment per way;
// ways with no nodes are skipped.
func fragmentsFromWays(ways []model.WayView) []Fragment {
	frags := make([]Fragment, 0, len(ways))
	for _, w := range ways {
		if len(w.Nodes) == 0 {
			continue
		}
		frags = append(frags, Fragment(w.Nodes))
	}
	return frags
}
