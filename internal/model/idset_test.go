package model

import "testing"

func TestIDSetUnion(t *testing.T) {
	a := NewIDSet(0)
	a.Add(1)
	a.Add(2)

	b := NewIDSet(0)
	b.Add(2)
	b.Add(3)

	a.Union(b)

	for _, id := range []int64{1, 2, 3} {
		if !a.Has(id) {
			t.Errorf("expected set to contain %d", id)
		}
	}
	if a.Len() != 3 {
		t.Errorf("expected len 3, got %d", a.Len())
	}
}

func TestIDSetHasMissing(t *testing.T) {
	s := NewIDSet(0)
	s.Add(5)
	if s.Has(6) {
		t.Error("expected set not to contain 6")
	}
}
