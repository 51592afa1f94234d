// Package resolver drives the three-pass scan (relations, ways, nodes)
// described in spec.md §4.3, threading the id-set handoff between passes
// and producing the frozen, read-only Store that FeatureBuilder consumes.
package resolver

import (
	"context"

	"github.com/cualbondi/osmptparser/internal/model"
	"github.com/cualbondi/osmptparser/internal/passrunner"
	"github.com/cualbondi/osmptparser/internal/pbfsource"
	"github.com/cualbondi/osmptparser/internal/tagfilter"
)

// Store is the frozen result of the three passes: flat, id-indexed tables
// plus the relation-way/standalone-way split pass 2 produces. It is
// read-only for the remainder of the program's life.
type Store struct {
	Relations      map[int64]*model.RelationRecord
	RelationWays   map[int64]*model.WayRecord // pass-2 relation-way bucket (no Info, per spec)
	StandaloneWays map[int64]*model.WayRecord // pass-2 areas-candidate bucket
	Nodes          map[int64]*model.NodeRecord
}

// Resolver runs the three passes against a pbfsource.Source.
type Resolver struct {
	Source  pbfsource.Source
	Workers int
	Filter  *tagfilter.Filter
}

// New builds a Resolver bound to src, evaluating filter against relation
// (and, for the areas standalone-way bucket, way) tags in pass 1/2.
func New(src pbfsource.Source, workers int, filter *tagfilter.Filter) *Resolver {
	return &Resolver{Source: src, Workers: workers, Filter: filter}
}

// relAcc is pass 1's per-worker accumulator.
type relAcc struct {
	relations []*model.RelationRecord
	wayIDs    model.IDSet
	stopIDs   model.IDSet
}

func newRelAcc() relAcc {
	return relAcc{wayIDs: model.NewIDSet(0), stopIDs: model.NewIDSet(0)}
}

func mergeRelAcc(a, b relAcc) relAcc {
	a.relations = append(a.relations, b.relations...)
	a.wayIDs.Union(b.wayIDs)
	a.stopIDs.Union(b.stopIDs)
	return a
}

// wayAcc is pass 2's per-worker accumulator.
type wayAcc struct {
	relationWays   []*model.WayRecord
	standaloneWays []*model.WayRecord
	nodeIDs        model.IDSet
}

func newWayAcc() wayAcc {
	return wayAcc{nodeIDs: model.NewIDSet(0)}
}

func mergeWayAcc(a, b wayAcc) wayAcc {
	a.relationWays = append(a.relationWays, b.relationWays...)
	a.standaloneWays = append(a.standaloneWays, b.standaloneWays...)
	a.nodeIDs.Union(b.nodeIDs)
	return a
}

// nodeAcc is pass 3's per-worker accumulator.
type nodeAcc struct {
	nodes []*model.NodeRecord
}

func mergeNodeAcc(a, b nodeAcc) nodeAcc {
	a.nodes = append(a.nodes, b.nodes...)
	return a
}

// Resolve runs pass 1 -> pass 2 -> pass 3 in order, each re-opening the
// source from the beginning, and returns the frozen Store.
func (r *Resolver) Resolve(ctx context.Context) (*Store, error) {
	pass1, err := passrunner.Run(ctx, r.Source, r.Workers, passrunner.Pass[relAcc]{
		Kind:           pbfsource.KindRelation,
		NewAccumulator: newRelAcc,
		Predicate: func(p pbfsource.Primitive) bool {
			return r.Filter.Matches(p.Tags)
		},
		Emit:  r.emitRelation,
		Merge: mergeRelAcc,
	})
	if err != nil {
		return nil, err
	}

	pass2, err := passrunner.Run(ctx, r.Source, r.Workers, passrunner.Pass[wayAcc]{
		Kind:           pbfsource.KindWay,
		NewAccumulator: newWayAcc,
		Predicate: func(p pbfsource.Primitive) bool {
			return pass1.wayIDs.Has(p.ID) || r.Filter.Matches(p.Tags)
		},
		Emit: func(acc wayAcc, p pbfsource.Primitive) wayAcc {
			return r.emitWay(pass1.wayIDs, acc, p)
		},
		Merge: mergeWayAcc,
	})
	if err != nil {
		return nil, err
	}

	wantedNodeIDs := model.NewIDSet(pass1.stopIDs.Len() + pass2.nodeIDs.Len())
	wantedNodeIDs.Union(pass1.stopIDs)
	wantedNodeIDs.Union(pass2.nodeIDs)

	pass3, err := passrunner.Run(ctx, r.Source, r.Workers, passrunner.Pass[nodeAcc]{
		Kind:           pbfsource.KindNode,
		NewAccumulator: func() nodeAcc { return nodeAcc{} },
		Predicate: func(p pbfsource.Primitive) bool {
			return wantedNodeIDs.Has(p.ID)
		},
		Emit:  emitNode,
		Merge: mergeNodeAcc,
	})
	if err != nil {
		return nil, err
	}

	store := &Store{
		Relations:      make(map[int64]*model.RelationRecord, len(pass1.relations)),
		RelationWays:   make(map[int64]*model.WayRecord, len(pass2.relationWays)),
		StandaloneWays: make(map[int64]*model.WayRecord, len(pass2.standaloneWays)),
		Nodes:          make(map[int64]*model.NodeRecord, len(pass3.nodes)),
	}
	for _, rel := range pass1.relations {
		store.Relations[rel.ID] = rel
	}
	for _, w := range pass2.relationWays {
		store.RelationWays[w.ID] = w
	}
	for _, w := range pass2.standaloneWays {
		store.StandaloneWays[w.ID] = w
	}
	for _, n := range pass3.nodes {
		store.Nodes[n.ID] = n
	}
	return store, nil
}

// emitRelation implements pass 1's emit: partition members into way_ids and
// stop_ids, discard relations left with no ways. Per spec.md §4.3's
// historical note, every member role is accepted.
func (r *Resolver) emitRelation(acc relAcc, p pbfsource.Primitive) relAcc {
	rec := &model.RelationRecord{
		ID:   p.ID,
		Tags: p.Tags,
		Info: model.Info(p.Info),
	}
	for _, m := range p.Members {
		switch m.Kind {
		case pbfsource.KindWay:
			rec.WayIDs = append(rec.WayIDs, m.Ref)
		case pbfsource.KindNode:
			rec.StopIDs = append(rec.StopIDs, m.Ref)
		}
	}
	if len(rec.WayIDs) == 0 {
		return acc
	}
	acc.relations = append(acc.relations, rec)
	for _, id := range rec.WayIDs {
		acc.wayIDs.Add(id)
	}
	for _, id := range rec.StopIDs {
		acc.stopIDs.Add(id)
	}
	return acc
}

// emitWay implements pass 2's two disjoint capture paths. A way id that
// satisfies both is kept once under each bucket.
func (r *Resolver) emitWay(wantedWayIDs model.IDSet, acc wayAcc, p pbfsource.Primitive) wayAcc {
	if wantedWayIDs.Has(p.ID) {
		rec := &model.WayRecord{ID: p.ID, Tags: p.Tags, NodeIDs: p.NodeIDs}
		acc.relationWays = append(acc.relationWays, rec)
		for _, id := range p.NodeIDs {
			acc.nodeIDs.Add(id)
		}
	}
	if r.Filter.Matches(p.Tags) && len(p.NodeIDs) > 0 {
		rec := &model.WayRecord{ID: p.ID, Tags: p.Tags, Info: model.Info(p.Info), NodeIDs: p.NodeIDs}
		acc.standaloneWays = append(acc.standaloneWays, rec)
		for _, id := range p.NodeIDs {
			acc.nodeIDs.Add(id)
		}
	}
	return acc
}

func emitNode(acc nodeAcc, p pbfsource.Primitive) nodeAcc {
	acc.nodes = append(acc.nodes, &model.NodeRecord{ID: p.ID, Lat: p.Lat, Lon: p.Lon, Tags: p.Tags})
	return acc
}
