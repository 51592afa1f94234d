package featurebuilder

import (
	"github.com/cualbondi/osmptparser/internal/model"
	"github.com/cualbondi/osmptparser/internal/resolver"
)

// hydrateWay resolves rec's node_ids against the node store, silently
// dropping any id that isn't present (spec.md §3 invariants).
func hydrateWay(rec *model.WayRecord, store *resolver.Store) model.WayView {
	nodes := make([]model.NodeView, 0, len(rec.NodeIDs))
	for _, id := range rec.NodeIDs {
		if n, ok := store.Nodes[id]; ok {
			nodes = append(nodes, *n)
		}
	}
	return model.WayView{ID: rec.ID, Tags: rec.Tags, Info: rec.Info, Nodes: nodes}
}

// hydrateRelationWays resolves rec's way_ids against the relation-way
// bucket, in declared order, dropping ids absent from the store.
func hydrateRelationWays(rec *model.RelationRecord, store *resolver.Store) []model.WayView {
	ways := make([]model.WayView, 0, len(rec.WayIDs))
	for _, id := range rec.WayIDs {
		w, ok := store.RelationWays[id]
		if !ok {
			continue
		}
		ways = append(ways, hydrateWay(w, store))
	}
	return ways
}

// hydrateStops resolves rec's stop_ids against the node store, in declared
// order, dropping unresolved ids.
func hydrateStops(rec *model.RelationRecord, store *resolver.Store) []model.NodeView {
	stops := make([]model.NodeView, 0, len(rec.StopIDs))
	for _, id := range rec.StopIDs {
		if n, ok := store.Nodes[id]; ok {
			stops = append(stops, *n)
		}
	}
	return stops
}
