// Package geojson renders output features as GeoJSON, per the external
// interface contract of spec.md §6. Areas serialize as standard Feature
// objects; PublicTransports use the non-standard FeatureCollection shape
// the source preserves (top-level properties, and a two-element features
// list of a line geometry and a stops sub-collection).
package geojson

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/cualbondi/osmptparser/internal/model"
)

// EncodeArea renders a as a GeoJSON Feature with Polygon geometry. ok is
// false when the area must be suppressed: any non-zero status code (not
// only Broken) or empty geometry, per spec.md §6.
func EncodeArea(a model.Area) (feature *geojson.Feature, ok bool) {
	if a.ParseStatus.Code() != 0 || len(a.Geometry) == 0 {
		return nil, false
	}

	polygon := make(orb.Polygon, len(a.Geometry))
	for i, ring := range a.Geometry {
		r := make(orb.Ring, len(ring))
		for j, n := range ring {
			r[j] = orb.Point{n.Lon, n.Lat}
		}
		polygon[i] = r
	}

	f := geojson.NewFeature(polygon)
	f.Properties = geojson.Properties{
		"id":           a.ID,
		"id_type":      string(a.IDType),
		"tags":         a.Tags,
		"info":         a.Info,
		"parse_status": a.ParseStatus,
	}
	return f, true
}

// ptv2Properties is the top-level, non-standard properties object a PTv2
// FeatureCollection carries.
type ptv2Properties struct {
	ID          int64             `json:"id"`
	Tags        map[string]string `json:"tags"`
	Info        model.Info        `json:"info"`
	ParseStatus model.ParseStatus `json:"parse_status"`
}

// ptv2FeatureCollection is the wire shape spec.md §6 describes: a
// FeatureCollection whose properties sit at the top level rather than per
// feature, and whose two features are the route geometry and a nested
// stops collection.
type ptv2FeatureCollection struct {
	Type       string            `json:"type"`
	Properties ptv2Properties    `json:"properties"`
	Features   []json.RawMessage `json:"features"`
}

// EncodePublicTransport renders pt as the PTv2 FeatureCollection shape.
// Unlike areas, a broken pt is still emitted (spec.md §7).
func EncodePublicTransport(pt model.PublicTransport) (json.RawMessage, error) {
	lines := make(orb.MultiLineString, len(pt.Geometry))
	for i, ls := range pt.Geometry {
		line := make(orb.LineString, len(ls))
		for j, n := range ls {
			line[j] = orb.Point{n.Lon, n.Lat}
		}
		lines[i] = line
	}

	lineFeature := geojson.NewFeature(lines)
	lineBytes, err := lineFeature.MarshalJSON()
	if err != nil {
		return nil, err
	}

	stopFeatures := make([]*geojson.Feature, len(pt.Stops))
	for i, stop := range pt.Stops {
		sf := geojson.NewFeature(orb.Point{stop.Lon, stop.Lat})
		sf.Properties = geojson.Properties{
			"id":   stop.ID,
			"tags": stop.Tags,
		}
		stopFeatures[i] = sf
	}
	stopsCollection := geojson.NewFeatureCollection()
	stopsCollection.Features = stopFeatures
	stopsBytes, err := stopsCollection.MarshalJSON()
	if err != nil {
		return nil, err
	}

	out := ptv2FeatureCollection{
		Type: "FeatureCollection",
		Properties: ptv2Properties{
			ID:          pt.ID,
			Tags:        pt.Tags,
			Info:        pt.Info,
			ParseStatus: pt.ParseStatus,
		},
		Features: []json.RawMessage{lineBytes, stopsBytes},
	}
	return json.Marshal(out)
}
