package reminders

import (
	"fmt"
	"testing"
)

func TestCueSetAddIsOncePerID(t *testing.T) {
	s := NewCueSet(8)

	if !s.Add("r1") {
		t.Fatal("first Add returned false")
	}
	if s.Add("r1") {
		t.Fatal("second Add of same ID returned true")
	}
	if !s.Has("r1") {
		t.Fatal("Has returned false for tracked ID")
	}
}

func TestCueSetEvict(t *testing.T) {
	s := NewCueSet(8)
	s.Add("r1")
	s.Evict("r1")

	if s.Has("r1") {
		t.Fatal("Has returned true after Evict")
	}
	if !s.Add("r1") {
		t.Fatal("Add after Evict returned false, want re-cue allowed")
	}

	// Evicting an unknown ID is a no-op
	s.Evict("unknown")
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestCueSetBound(t *testing.T) {
	s := NewCueSet(3)
	for i := 0; i < 5; i++ {
		s.Add(fmt.Sprintf("r%d", i))
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want bound of 3", s.Len())
	}
	// Oldest entries are dropped first
	if s.Has("r0") || s.Has("r1") {
		t.Error("oldest entries survived past the bound")
	}
	if !s.Has("r4") {
		t.Error("newest entry missing")
	}
}
