package model

// Info carries the optional OSM metadata attached to a primitive. Any
// subset of keys may be absent; callers look values up by name rather than
// relying on every field being populated (spec.md §3: "all strings, any
// subset may be absent").
type Info map[string]string

// Well-known Info keys.
const (
	InfoVersion    = "version"
	InfoTimestamp  = "timestamp"
	InfoChangeset  = "changeset"
	InfoUid        = "uid"
	InfoUser       = "user"
	InfoVisible    = "visible"
)

// NodeRecord is the flat, stored form of an OSM node: an id, a position,
// and its tags. Two NodeRecords are considered the same node iff their ids
// match; Lat/Lon/Tags are positional metadata only.
type NodeRecord struct {
	ID   int64
	Lat  float64
	Lon  float64
	Tags map[string]string
}

// WayRecord is the flat, stored form of an OSM way.
type WayRecord struct {
	ID      int64
	Tags    map[string]string
	Info    Info
	NodeIDs []int64
}

// RelationRecord is the flat, stored form of an OSM relation, with its
// way-kind and node-kind members already partitioned into separate ordered
// sequences (spec.md §4.3, pass 1 emit).
type RelationRecord struct {
	ID      int64
	Tags    map[string]string
	Info    Info
	WayIDs  []int64
	StopIDs []int64
}
