package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Milestones(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{WindowEndTick: 600, Alive: 100, Total: 100}); len(bms) != 0 {
		t.Fatalf("unexpected bookmarks %v", bms)
	}

	bms := bd.Check(WindowStats{WindowEndTick: 1200, Alive: 99, Destroyed: 1, Total: 100, Kills: 1})
	if !hasBookmark(bms, BookmarkFirstKill) {
		t.Error("expected first_kill bookmark")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 1800, Alive: 98, Destroyed: 2, Total: 100, Kills: 1})
	if hasBookmark(bms, BookmarkFirstKill) {
		t.Error("first_kill should fire once")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 2400, Alive: 50, Destroyed: 50, Total: 100, Kills: 48})
	if !hasBookmark(bms, BookmarkFleetHalved) {
		t.Error("expected fleet_halved bookmark")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 3000, Alive: 0, Destroyed: 100, Total: 100, Kills: 50})
	if !hasBookmark(bms, BookmarkFleetWiped) {
		t.Error("expected fleet_wiped bookmark")
	}
	if hasBookmark(bms, BookmarkFleetHalved) {
		t.Error("fleet_halved should fire once")
	}
}

func TestBookmarkDetector_KillStreak(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Alive: 90, Total: 100, Kills: 1})
	}

	bms := bd.Check(WindowStats{WindowEndTick: 3000, Alive: 85, Total: 100, Kills: 5})
	if !hasBookmark(bms, BookmarkKillStreak) {
		t.Error("expected kill_streak bookmark")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 3600, Alive: 84, Total: 100, Kills: 2})
	if hasBookmark(bms, BookmarkKillStreak) {
		t.Error("two kills should not be a streak")
	}
}

func TestBookmarkDetector_Maneuver(t *testing.T) {
	bd := NewBookmarkDetector(5)

	bms := bd.Check(WindowStats{Maneuvering: true, Alive: 100, Total: 100})
	if !hasBookmark(bms, BookmarkManeuver) {
		t.Error("expected maneuver bookmark")
	}
	bms = bd.Check(WindowStats{Maneuvering: true, Alive: 100, Total: 100})
	if hasBookmark(bms, BookmarkManeuver) {
		t.Error("maneuver should fire once")
	}
}

func TestBookmarkDetector_EmptyFleet(t *testing.T) {
	bd := NewBookmarkDetector(5)
	if bms := bd.Check(WindowStats{}); len(bms) != 0 {
		t.Errorf("empty fleet should not trigger bookmarks, got %v", bms)
	}
}
