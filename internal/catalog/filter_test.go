package catalog

import (
	"fmt"
	"testing"
)

func TestFilter_MightContain(t *testing.T) {
	ids := []string{"a1", "b2", "c3"}
	f := NewFilter(ids)

	for _, id := range ids {
		if !f.MightContain(id) {
			t.Errorf("expected %q to be present", id)
		}
	}
}

func TestFilter_RejectsUnknownIDs(t *testing.T) {
	ids := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		ids = append(ids, fmt.Sprintf("product-%d", i))
	}
	f := NewFilter(ids)

	// With a 0.1% target false-positive rate, the vast majority of unknown
	// ids must be rejected.
	rejected := 0
	for i := 0; i < 1000; i++ {
		if !f.MightContain(fmt.Sprintf("unknown-%d", i)) {
			rejected++
		}
	}
	if rejected < 950 {
		t.Errorf("expected most unknown ids rejected, got %d/1000", rejected)
	}
}

func TestFilter_Add(t *testing.T) {
	f := NewFilter(nil)
	if f.MightContain("later") {
		t.Skip("false positive on empty filter, extremely unlikely")
	}
	f.Add("later")
	if !f.MightContain("later") {
		t.Error("expected added id to be present")
	}
}

func TestFilter_NilIsPermissive(t *testing.T) {
	var f *Filter
	if !f.MightContain("anything") {
		t.Error("nil filter must not reject")
	}
	f.Add("anything") // must not panic
}
