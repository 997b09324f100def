package telemetry

import (
	"testing"
)

func hasBookmark(bms []Bookmark, typ BookmarkType, species string) bool {
	for _, bm := range bms {
		if bm.Type == typ && bm.Species == species {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(20)

	bd.Check(TickStats{Tick: 1, PopA: 10, PopB: 3})
	bms := bd.Check(TickStats{Tick: 2, PopA: 10, PopB: 0})
	if !hasBookmark(bms, BookmarkExtinction, "B") {
		t.Errorf("expected extinction of B, got %+v", bms)
	}

	// Staying extinct does not repeat the bookmark
	if bms := bd.Check(TickStats{Tick: 3, PopA: 10, PopB: 0}); hasBookmark(bms, BookmarkExtinction, "B") {
		t.Error("extinction bookmark repeated")
	}
}

func TestBookmarkDetector_FirstTickLosses(t *testing.T) {
	bd := NewBookmarkDetector(50)
	bd.Prime([2]int{30, 2})

	bms := bd.Check(TickStats{Tick: 1, PopA: 10, PopB: 0})
	if !hasBookmark(bms, BookmarkExtinction, "B") {
		t.Errorf("expected extinction of B in tick 1, got %+v", bms)
	}
	if !hasBookmark(bms, BookmarkPopulationCrash, "A") {
		t.Errorf("expected crash of A in tick 1, got %+v", bms)
	}
	if bms := bd.Check(TickStats{Tick: 2, PopA: 10, PopB: 0}); hasBookmark(bms, BookmarkExtinction, "B") {
		t.Error("extinction bookmark repeated")
	}
}

func TestBookmarkDetector_EmptyStartIsQuiet(t *testing.T) {
	bd := NewBookmarkDetector(50)
	bd.Prime([2]int{0, 0})
	if bms := bd.Check(TickStats{Tick: 1}); len(bms) != 0 {
		t.Errorf("empty world raised %+v", bms)
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(20)

	for tick := 1; tick <= 5; tick++ {
		bd.Check(TickStats{Tick: tick, PopA: 40, PopB: 5})
	}
	bms := bd.Check(TickStats{Tick: 6, PopA: 15, PopB: 5})
	if !hasBookmark(bms, BookmarkPopulationCrash, "A") {
		t.Fatalf("expected crash of A, got %+v", bms)
	}

	// Peak was reset to 15, so a further small dip is not a crash
	if bms := bd.Check(TickStats{Tick: 7, PopA: 12, PopB: 5}); hasBookmark(bms, BookmarkPopulationCrash, "A") {
		t.Error("crash fired twice without a new peak")
	}
}

func TestBookmarkDetector_SmallDipIsNotCrash(t *testing.T) {
	bd := NewBookmarkDetector(20)
	bd.Check(TickStats{Tick: 1, PopA: 6, PopB: 2})
	// 66% drop but only 4 organisms lost
	if bms := bd.Check(TickStats{Tick: 2, PopA: 2, PopB: 2}); hasBookmark(bms, BookmarkPopulationCrash, "A") {
		t.Error("tiny population dip reported as crash")
	}
}

func TestBookmarkDetector_Recovery(t *testing.T) {
	bd := NewBookmarkDetector(20)

	bd.Check(TickStats{Tick: 1, PopA: 20, PopB: 2})
	bd.Check(TickStats{Tick: 2, PopA: 20, PopB: 4})
	bms := bd.Check(TickStats{Tick: 3, PopA: 20, PopB: 6})
	if !hasBookmark(bms, BookmarkRecovery, "B") {
		t.Errorf("expected recovery of B, got %+v", bms)
	}
}

func TestBookmarkDetector_PollutionMilestones(t *testing.T) {
	bd := NewBookmarkDetector(20)

	levels := []float64{0.1, 0.3, 0.31, 0.8, 0.9, 1.0}
	var fired []float64
	for i, p := range levels {
		for _, bm := range bd.Check(TickStats{Tick: i + 1, PopA: 1, Pollution: p}) {
			if bm.Type == BookmarkPollution {
				fired = append(fired, p)
			}
		}
	}
	// 0.3 crosses 0.25; 0.8 crosses 0.5 and 0.75 at once; 1.0 crosses 1.0
	want := []float64{0.3, 0.8, 1.0}
	if len(fired) != len(want) {
		t.Fatalf("milestones fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("milestone %d at %v, want %v", i, fired[i], want[i])
		}
	}
}

func TestBookmarkDetector_StableCoexistence(t *testing.T) {
	bd := NewBookmarkDetector(20)

	count := 0
	for tick := 1; tick <= 40; tick++ {
		popA := 30 + tick%2
		for _, bm := range bd.Check(TickStats{Tick: tick, PopA: popA, PopB: 8}) {
			if bm.Type == BookmarkStableCoexisting {
				count++
				if bm.Tick != 20 {
					t.Errorf("stable bookmark at tick %d, want 20", bm.Tick)
				}
			}
		}
	}
	if count != 1 {
		t.Errorf("stable bookmark fired %d times, want once", count)
	}
}

func TestBookmarkDetector_UnstableIsQuiet(t *testing.T) {
	bd := NewBookmarkDetector(20)
	for tick := 1; tick <= 40; tick++ {
		popA := 10
		if tick%2 == 0 {
			popA = 40
		}
		for _, bm := range bd.Check(TickStats{Tick: tick, PopA: popA, PopB: 8}) {
			if bm.Type == BookmarkStableCoexisting {
				t.Fatalf("swinging population reported stable at tick %d", tick)
			}
		}
	}
}
