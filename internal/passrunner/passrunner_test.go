package passrunner_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cualbondi/osmptparser/internal/passrunner"
	"github.com/cualbondi/osmptparser/internal/pbfsource"
)

func fixture(n int) []pbfsource.Primitive {
	prims := make([]pbfsource.Primitive, 0, n)
	for i := 0; i < n; i++ {
		prims = append(prims, pbfsource.Primitive{
			Kind: pbfsource.KindNode,
			ID:   int64(i),
			Tags: map[string]string{"k": "v"},
		})
	}
	return prims
}

func countPass(ids *[]int64) passrunner.Pass[[]int64] {
	return passrunner.Pass[[]int64]{
		Kind:           pbfsource.KindNode,
		NewAccumulator: func() []int64 { return nil },
		Predicate:      func(p pbfsource.Primitive) bool { return p.ID%2 == 0 },
		Emit: func(acc []int64, p pbfsource.Primitive) []int64 {
			return append(acc, p.ID)
		},
		Merge: func(a, b []int64) []int64 {
			return append(a, b...)
		},
	}
}

func TestRunFiltersByPredicateAndKind(t *testing.T) {
	src := &pbfsource.MemorySource{Primitives: fixture(10), BatchSize: 3}

	var dummy []int64
	result, err := passrunner.Run(context.Background(), src, 3, countPass(&dummy))
	require.NoError(t, err)

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	assert.Equal(t, []int64{0, 2, 4, 6, 8}, result)
}

func TestRunWorkerCountInvariance(t *testing.T) {
	var dummy []int64

	src1 := &pbfsource.MemorySource{Primitives: fixture(20), BatchSize: 4}
	r1, err := passrunner.Run(context.Background(), src1, 1, countPass(&dummy))
	require.NoError(t, err)

	src2 := &pbfsource.MemorySource{Primitives: fixture(20), BatchSize: 4}
	r2, err := passrunner.Run(context.Background(), src2, 5, countPass(&dummy))
	require.NoError(t, err)

	sort.Slice(r1, func(i, j int) bool { return r1[i] < r1[j] })
	sort.Slice(r2, func(i, j int) bool { return r2[i] < r2[j] })
	assert.Equal(t, r1, r2)
}

func TestRunIgnoresOtherKinds(t *testing.T) {
	prims := []pbfsource.Primitive{
		{Kind: pbfsource.KindWay, ID: 1},
		{Kind: pbfsource.KindRelation, ID: 2},
		{Kind: pbfsource.KindNode, ID: 4},
	}
	src := &pbfsource.MemorySource{Primitives: prims}

	var dummy []int64
	result, err := passrunner.Run(context.Background(), src, 2, countPass(&dummy))
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, result)
}

func TestRunPropagatesOpenError(t *testing.T) {
	src := pbfsource.NewFileSource("/nonexistent/path/does-not-exist.pbf", 1)

	var dummy []int64
	_, err := passrunner.Run(context.Background(), src, 1, countPass(&dummy))
	assert.Error(t, err)
}
