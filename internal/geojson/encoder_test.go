package geojson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cualbondi/osmptparser/internal/model"
)

func TestEncodeAreaSuppressedWhenBroken(t *testing.T) {
	area := model.Area{
		ID:          1,
		IDType:      model.AreaFromWay,
		ParseStatus: model.ParseStatus{Kind: model.StatusBroken},
		Geometry:    []model.LineString{{{ID: 1, Lat: 0, Lon: 0}}},
	}
	_, ok := EncodeArea(area)
	assert.False(t, ok)
}

func TestEncodeAreaSuppressedWhenEmptyGeometry(t *testing.T) {
	area := model.Area{ID: 1, IDType: model.AreaFromWay, ParseStatus: model.ParseStatus{Kind: model.StatusOK}}
	_, ok := EncodeArea(area)
	assert.False(t, ok)
}

func TestEncodeAreaShape(t *testing.T) {
	ring := model.LineString{
		{ID: 1, Lat: 0, Lon: 0},
		{ID: 2, Lat: 0, Lon: 1},
		{ID: 3, Lat: 1, Lon: 1},
		{ID: 1, Lat: 0, Lon: 0},
	}
	area := model.Area{
		ID:          42,
		IDType:      model.AreaFromRelation,
		Tags:        map[string]string{"boundary": "administrative"},
		ParseStatus: model.ParseStatus{Kind: model.StatusOK},
		Geometry:    []model.LineString{ring},
	}

	feature, ok := EncodeArea(area)
	require.True(t, ok)

	raw, err := feature.MarshalJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Feature", decoded["type"])
	geom := decoded["geometry"].(map[string]interface{})
	assert.Equal(t, "Polygon", geom["type"])

	props := decoded["properties"].(map[string]interface{})
	assert.EqualValues(t, 42, props["id"])
	assert.Equal(t, "r", props["id_type"])
}

func TestEncodePublicTransportTopLevelProperties(t *testing.T) {
	pt := model.PublicTransport{
		ID:   7,
		Tags: map[string]string{"name": "Route X"},
		Stops: []model.NodeView{
			{ID: 1, Lat: 0, Lon: 0},
			{ID: 2, Lat: 0, Lon: 1},
		},
		Geometry: []model.LineString{
			{{ID: 1, Lat: 0, Lon: 0}, {ID: 2, Lat: 0, Lon: 1}},
		},
		ParseStatus: model.ParseStatus{Kind: model.StatusOK},
	}

	raw, err := EncodePublicTransport(pt)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "FeatureCollection", decoded["type"])
	props := decoded["properties"].(map[string]interface{})
	assert.EqualValues(t, 7, props["id"])

	features := decoded["features"].([]interface{})
	require.Len(t, features, 2)

	stopsCollection := features[1].(map[string]interface{})
	assert.Equal(t, "FeatureCollection", stopsCollection["type"])
	stopFeatures := stopsCollection["features"].([]interface{})
	assert.Len(t, stopFeatures, 2)
}
