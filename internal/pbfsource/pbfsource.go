// Package pbfsource is the external collaborator spec.md §6 describes:
// open-by-path to a stream of Blobs, each decodable into a PrimitiveBlock
// independently of the others, each yielding typed Node/Way/Relation
// primitives. The underlying decoder, github.com/paulmach/osm/osmpbf, only
// exposes a single merged, in-order primitive stream rather than raw blob
// boundaries, so Source batches that stream back into blob-sized chunks:
// a Batch stands in for spec.md's "blob-sized compressed chunk" and is the
// unit PassRunner round-robins to its workers.
package pbfsource

import (
	"context"
)

// Kind selects which OSM primitive type a pass is interested in.
type Kind int

const (
	KindNode Kind = iota
	KindWay
	KindRelation
)

// Member is one relation member, mirroring spec.md §6's
// "members(): iterable of (role, id, kind)".
type Member struct {
	Role string
	Ref  int64
	Kind Kind
}

// Primitive is a decoded OSM element, shaped as the union spec.md §6
// describes. Only the fields relevant to Kind are populated.
type Primitive struct {
	Kind Kind
	ID   int64
	Tags map[string]string

	// Node fields.
	Lat, Lon float64

	// Way fields.
	NodeIDs []int64

	// Relation fields.
	Members []Member

	// Way/Relation optional metadata.
	Info map[string]string
}

// Batch is a blob-sized run of primitives handed to a single PassRunner
// worker in one round-robin turn.
type Batch struct {
	Index      int
	Primitives []Primitive
}

// BatchIterator streams Batches from one open pass over the file.
type BatchIterator interface {
	// Next returns the next batch. ok is false once the source is
	// exhausted; err reports a fatal decode failure.
	Next() (batch Batch, ok bool, err error)
	Close() error
}

// Source opens fresh, independent iterators over the same underlying PBF,
// one per pass (spec.md §2: "each pass re-opening the file from the
// beginning").
type Source interface {
	Open(ctx context.Context) (BatchIterator, error)
}
