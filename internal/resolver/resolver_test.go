package resolver_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cualbondi/osmptparser/internal/featurebuilder"
	"github.com/cualbondi/osmptparser/internal/model"
	"github.com/cualbondi/osmptparser/internal/pbfsource"
	"github.com/cualbondi/osmptparser/internal/resolver"
	"github.com/cualbondi/osmptparser/internal/tagfilter"
)

// ptv2Fixture reproduces spec.md §8's two-relation end-to-end scenarios on
// synthetic data, standing in for the real tests/test.pbf fixture: two
// PTv2 relations, one with three stops and a two-way connected line, one
// with a single stop and a single way.
func ptv2Fixture() []pbfsource.Primitive {
	return []pbfsource.Primitive{
		{
			Kind: pbfsource.KindRelation,
			ID:   1,
			Tags: map[string]string{"name": "Route A", "route_master": "bus", "route": "bus"},
			Info: map[string]string{"version": "226", "timestamp": "1552883955"},
			Members: []pbfsource.Member{
				{Role: "", Ref: 10, Kind: pbfsource.KindWay},
				{Role: "", Ref: 11, Kind: pbfsource.KindWay},
				{Role: "stop", Ref: 100, Kind: pbfsource.KindNode},
				{Role: "stop", Ref: 101, Kind: pbfsource.KindNode},
				{Role: "stop", Ref: 102, Kind: pbfsource.KindNode},
			},
		},
		{
			Kind: pbfsource.KindRelation,
			ID:   2,
			Tags: map[string]string{"name": "Route B", "route_master": "tram", "route": "tram"},
			Info: map[string]string{"version": "13", "timestamp": "1555013271"},
			Members: []pbfsource.Member{
				{Role: "", Ref: 20, Kind: pbfsource.KindWay},
				{Role: "stop", Ref: 200, Kind: pbfsource.KindNode},
			},
		},
		{
			Kind: pbfsource.KindWay, ID: 10,
			Tags: map[string]string{"highway": "residential"}, NodeIDs: []int64{300, 301, 302},
		},
		{
			Kind: pbfsource.KindWay, ID: 11,
			Tags: map[string]string{"highway": "residential"}, NodeIDs: []int64{302, 303, 304},
		},
		{
			Kind: pbfsource.KindWay, ID: 20,
			Tags: map[string]string{"highway": "residential"}, NodeIDs: []int64{400, 401},
		},
		{Kind: pbfsource.KindNode, ID: 100, Lat: -0.20, Lon: -78.50},
		{Kind: pbfsource.KindNode, ID: 101, Lat: -0.21, Lon: -78.51},
		{Kind: pbfsource.KindNode, ID: 102, Lat: -0.22, Lon: -78.52},
		{Kind: pbfsource.KindNode, ID: 200, Lat: -2.20, Lon: -79.90},
		{Kind: pbfsource.KindNode, ID: 300, Lat: 0.00, Lon: 0.00},
		{Kind: pbfsource.KindNode, ID: 301, Lat: 0.00, Lon: 0.01},
		{Kind: pbfsource.KindNode, ID: 302, Lat: 0.00, Lon: 0.02},
		{Kind: pbfsource.KindNode, ID: 303, Lat: 0.00, Lon: 0.03},
		{Kind: pbfsource.KindNode, ID: 304, Lat: 0.00, Lon: 0.04},
		{Kind: pbfsource.KindNode, ID: 400, Lat: 1.00, Lon: 1.00},
		{Kind: pbfsource.KindNode, ID: 401, Lat: 1.00, Lon: 1.01},
	}
}

func resolvePtv2(t *testing.T, cpus int) *resolver.Store {
	t.Helper()
	filter, err := tagfilter.Compile("name&route_master&route=bus,tram,train,subway,light_rail,monorail,trolleybus")
	require.NoError(t, err)

	src := &pbfsource.MemorySource{Primitives: ptv2Fixture()}
	res := resolver.New(src, cpus, filter)

	store, err := res.Resolve(context.Background())
	require.NoError(t, err)
	return store
}

// Scenario 1 analogue: exactly two relations are retained.
func TestResolveRetainsBothRelations(t *testing.T) {
	store := resolvePtv2(t, 2)
	assert.Len(t, store.Relations, 2)
}

// Scenario 2 analogue: public_transports sorted by id has the expected
// names and stop counts.
func TestPublicTransportsSortedByID(t *testing.T) {
	store := resolvePtv2(t, 2)
	builder := featurebuilder.New(store, 2)
	pts := builder.PublicTransports(150.0)

	sort.Slice(pts, func(i, j int) bool { return pts[i].ID < pts[j].ID })

	require.Len(t, pts, 2)
	assert.Equal(t, int64(1), pts[0].ID)
	assert.Equal(t, "Route A", pts[0].Tags["name"])
	assert.Len(t, pts[0].Stops, 3)

	assert.Equal(t, int64(2), pts[1].ID)
	assert.Equal(t, "Route B", pts[1].Tags["name"])
	assert.Len(t, pts[1].Stops, 1)
}

// Scenario 3 analogue: worker-count invariance, W=1 vs W=2.
func TestPublicTransportsWorkerCountInvariant(t *testing.T) {
	storeW1 := resolvePtv2(t, 1)
	storeW2 := resolvePtv2(t, 2)

	ptsW1 := featurebuilder.New(storeW1, 1).PublicTransports(150.0)
	ptsW2 := featurebuilder.New(storeW2, 2).PublicTransports(150.0)

	sort.Slice(ptsW1, func(i, j int) bool { return ptsW1[i].ID < ptsW1[j].ID })
	sort.Slice(ptsW2, func(i, j int) bool { return ptsW2[i].ID < ptsW2[j].ID })

	require.Equal(t, len(ptsW1), len(ptsW2))
	for i := range ptsW1 {
		assert.Equal(t, ptsW1[i].ID, ptsW2[i].ID)
		assert.Equal(t, ptsW1[i].Tags["name"], ptsW2[i].Tags["name"])
		assert.Len(t, ptsW2[i].Stops, len(ptsW1[i].Stops))
	}
}

// Scenario 4 analogue: relation info metadata survives hydration.
func TestPublicTransportsCarryInfo(t *testing.T) {
	store := resolvePtv2(t, 1)
	pts := featurebuilder.New(store, 1).PublicTransports(150.0)
	sort.Slice(pts, func(i, j int) bool { return pts[i].ID < pts[j].ID })

	require.Len(t, pts, 2)
	assert.Equal(t, "226", pts[0].Info[model.InfoVersion])
	assert.Equal(t, "1552883955", pts[0].Info[model.InfoTimestamp])
	assert.Equal(t, "13", pts[1].Info[model.InfoVersion])
	assert.Equal(t, "1555013271", pts[1].Info[model.InfoTimestamp])
}

// Universal property: after pass 1, every retained relation's way_ids and
// stop_ids are subsets of the id sets threaded to the next pass — verified
// indirectly here via the fact that every relation-way and every stop
// resolved successfully.
func TestRelationWaysAndStopsResolve(t *testing.T) {
	store := resolvePtv2(t, 2)
	for _, rel := range store.Relations {
		for _, wid := range rel.WayIDs {
			_, ok := store.RelationWays[wid]
			assert.True(t, ok, "way %d from relation %d must be retained", wid, rel.ID)
		}
		for _, sid := range rel.StopIDs {
			_, ok := store.Nodes[sid]
			assert.True(t, ok, "stop %d from relation %d must be retained", sid, rel.ID)
		}
	}
}

// Relation-ways must not carry Info, per spec.md §4.3's pass-2 note.
func TestRelationWaysOmitInfo(t *testing.T) {
	store := resolvePtv2(t, 2)
	for _, w := range store.RelationWays {
		assert.Empty(t, w.Info)
	}
}
