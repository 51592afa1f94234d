// Package featurebuilder hydrates stored relations/ways into output
// features, fanning the work out across workers via ParallelMap
// (spec.md §4.4/§4.6).
package featurebuilder

import (
	"golang.org/x/sync/errgroup"

	"github.com/cualbondi/osmptparser/internal/healer"
	"github.com/cualbondi/osmptparser/internal/model"
	"github.com/cualbondi/osmptparser/internal/resolver"
)

// FeatureBuilder turns a frozen resolver.Store into output features.
type FeatureBuilder struct {
	Store   *resolver.Store
	Workers int
}

// New returns a FeatureBuilder bound to store.
func New(store *resolver.Store, workers int) *FeatureBuilder {
	return &FeatureBuilder{Store: store, Workers: workers}
}

// PublicTransports hydrates every stored relation and flattens its ways
// into an open line (closed=false), per spec.md §4.4.
func (b *FeatureBuilder) PublicTransports(gap float64) []model.PublicTransport {
	relations := make([]*model.RelationRecord, 0, len(b.Store.Relations))
	for _, rel := range b.Store.Relations {
		relations = append(relations, rel)
	}

	return ParallelMap(relations, b.Workers, func(rec *model.RelationRecord) model.PublicTransport {
		ways := hydrateRelationWays(rec, b.Store)
		stops := hydrateStops(rec, b.Store)
		result := healer.Flatten(ways, gap)

		geometry := make([]model.LineString, len(result.LineStrings))
		for i, frag := range result.LineStrings {
			geometry[i] = model.LineString(frag)
		}

		return model.PublicTransport{
			ID:          rec.ID,
			Tags:        rec.Tags,
			Info:        rec.Info,
			Stops:       stops,
			Geometry:    geometry,
			ParseStatus: result.Status,
		}
	})
}

// Areas produces Area features from every stored relation (closed=true,
// id_type='r') and every standalone way (closed=true, id_type='w'),
// computed concurrently since the two sources are independent.
func (b *FeatureBuilder) Areas(gap float64) ([]model.Area, error) {
	var relationAreas, wayAreas []model.Area

	g := new(errgroup.Group)
	g.Go(func() error {
		relationAreas = b.relationAreas(gap)
		return nil
	})
	g.Go(func() error {
		wayAreas = b.wayAreas(gap)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	areas := make([]model.Area, 0, len(relationAreas)+len(wayAreas))
	areas = append(areas, relationAreas...)
	areas = append(areas, wayAreas...)
	return areas, nil
}

func (b *FeatureBuilder) relationAreas(gap float64) []model.Area {
	relations := make([]*model.RelationRecord, 0, len(b.Store.Relations))
	for _, rel := range b.Store.Relations {
		relations = append(relations, rel)
	}

	return ParallelMap(relations, b.Workers, func(rec *model.RelationRecord) model.Area {
		ways := hydrateRelationWays(rec, b.Store)
		flattened := healer.Flatten(ways, gap)
		closed := healer.Close(flattened, gap)

		geometry := make([]model.LineString, len(closed.LineStrings))
		for i, ring := range closed.LineStrings {
			geometry[i] = model.LineString(ring)
		}

		return model.Area{
			ID:          rec.ID,
			IDType:      model.AreaFromRelation,
			Tags:        rec.Tags,
			Info:        rec.Info,
			Geometry:    geometry,
			ParseStatus: closed.Status,
		}
	})
}

func (b *FeatureBuilder) wayAreas(gap float64) []model.Area {
	ways := make([]*model.WayRecord, 0, len(b.Store.StandaloneWays))
	for _, w := range b.Store.StandaloneWays {
		ways = append(ways, w)
	}

	return ParallelMap(ways, b.Workers, func(rec *model.WayRecord) model.Area {
		view := hydrateWay(rec, b.Store)
		flattened := healer.Flatten([]model.WayView{view}, gap)
		closed := healer.Close(flattened, gap)

		geometry := make([]model.LineString, len(closed.LineStrings))
		for i, ring := range closed.LineStrings {
			geometry[i] = model.LineString(ring)
		}

		return model.Area{
			ID:          rec.ID,
			IDType:      model.AreaFromWay,
			Tags:        rec.Tags,
			Info:        rec.Info,
			Geometry:    geometry,
			ParseStatus: closed.Status,
		}
	})
}
