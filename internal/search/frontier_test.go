package search

import "testing"

func TestFrontierFIFOAcrossGrowth(t *testing.T) {
	f := newFrontier(2)
	next := 0
	want := 0

	// Interleave pushes and pops so the ring wraps before it grows
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			f.Push(next)
			next++
		}
		for i := 0; i < 2; i++ {
			got, ok := f.Pop()
			if !ok {
				t.Fatalf("round %d: unexpected empty frontier", round)
			}
			if got != want {
				t.Fatalf("round %d: got %d, want %d", round, got, want)
			}
			want++
		}
	}

	for f.Len() > 0 {
		got, _ := f.Pop()
		if got != want {
			t.Fatalf("drain: got %d, want %d", got, want)
		}
		want++
	}
	if want != next {
		t.Fatalf("drained %d entries, pushed %d", want, next)
	}
	if _, ok := f.Pop(); ok {
		t.Fatalf("pop on empty frontier reported ok")
	}
}
