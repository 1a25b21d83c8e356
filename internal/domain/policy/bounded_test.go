package policy

import (
	"strconv"
	"testing"
	"time"
)

type stamped struct {
	name string
	at   time.Time
}

func TestPrepend_InsertsAtFront(t *testing.T) {
	items := []int{2, 3}
	got := Prepend(items, 1, 10)
	if len(got) != 3 {
		t.Fatalf("Prepend() len = %d, want 3", len(got))
	}
	if got[0] != 1 {
		t.Errorf("Prepend() front = %d, want 1", got[0])
	}
}

func TestPrepend_EvictsOldestBeyondMax(t *testing.T) {
	// Tokens A(oldest at the tail after repeated prepends)..J(newest).
	var items []string
	for _, tok := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		items = Prepend(items, tok, 10)
	}
	if len(items) != 10 {
		t.Fatalf("len = %d, want 10", len(items))
	}

	items = Prepend(items, "K", 10)
	if len(items) != 10 {
		t.Fatalf("after overflow len = %d, want 10", len(items))
	}
	if items[0] != "K" {
		t.Errorf("front = %q, want K", items[0])
	}
	for _, tok := range items {
		if tok == "A" {
			t.Error("oldest token A should have been evicted")
		}
	}
	if items[len(items)-1] != "B" {
		t.Errorf("tail = %q, want B", items[len(items)-1])
	}
}

func TestPrepend_ManyInsertsNeverExceedMax(t *testing.T) {
	var items []string
	for i := 0; i < 50; i++ {
		items = Prepend(items, "tok-"+strconv.Itoa(i), 10)
		if len(items) > 10 {
			t.Fatalf("after insert %d len = %d, want <= 10", i, len(items))
		}
	}
	if items[0] != "tok-49" {
		t.Errorf("front = %q, want tok-49", items[0])
	}
}

func TestTrimNewest_SortsByOwnTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Deliberately out of order: array order must not matter.
	items := []stamped{
		{"old", base},
		{"newest", base.Add(3 * time.Hour)},
		{"mid", base.Add(1 * time.Hour)},
		{"newer", base.Add(2 * time.Hour)},
	}

	got := TrimNewest(items, 2, func(s stamped) time.Time { return s.at })
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].name != "newest" || got[1].name != "newer" {
		t.Errorf("kept = [%s %s], want [newest newer]", got[0].name, got[1].name)
	}
}

func TestTrimNewest_UnderCapUnchanged(t *testing.T) {
	base := time.Now()
	items := []stamped{{"a", base}, {"b", base.Add(time.Minute)}}
	got := TrimNewest(items, 20, func(s stamped) time.Time { return s.at })
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestDropOlderThan(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	items := []stamped{
		{"stale", now.AddDate(0, 0, -40)},
		{"fresh", now.AddDate(0, 0, -5)},
	}

	kept, removed := DropOlderThan(items, now.AddDate(0, 0, -30), func(s stamped) time.Time { return s.at })
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(kept) != 1 || kept[0].name != "fresh" {
		t.Errorf("kept = %v, want only fresh", kept)
	}
}
