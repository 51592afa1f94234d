package pbfsource

import "context"

// MemorySource is an in-memory Source fake used by tests in place of a real
// tests/test.pbf fixture: it replays a fixed slice of primitives, chunked
// into Batches exactly like FileSource, so pass/resolver tests exercise the
// same batching and round-robin dispatch path the real decoder does.
type MemorySource struct {
	Primitives []Primitive
	BatchSize  int // 0 = one batch per Open call
}

func (s *MemorySource) Open(ctx context.Context) (BatchIterator, error) {
	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = len(s.Primitives)
		if batchSize == 0 {
			batchSize = 1
		}
	}
	return &memoryIterator{primitives: s.Primitives, batchSize: batchSize}, nil
}

type memoryIterator struct {
	primitives []Primitive
	batchSize  int
	offset     int
	index      int
}

func (it *memoryIterator) Next() (Batch, bool, error) {
	if it.offset >= len(it.primitives) {
		return Batch{}, false, nil
	}

	end := it.offset + it.batchSize
	if end > len(it.primitives) {
		end = len(it.primitives)
	}

	batch := Batch{Index: it.index, Primitives: it.primitives[it.offset:end]}
	it.offset = end
	it.index++
	return batch, true, nil
}

func (it *memoryIterator) Close() error {
	return nil
}
