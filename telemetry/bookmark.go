package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstKill   BookmarkType = "first_kill"
	BookmarkKillStreak  BookmarkType = "kill_streak"
	BookmarkFleetHalved BookmarkType = "fleet_halved"
	BookmarkFleetWiped  BookmarkType = "fleet_wiped"
	BookmarkManeuver    BookmarkType = "maneuver"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a run from window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// One-shot milestones
	firstKill   bool
	halved      bool
	wiped       bool
	maneuvering bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.firstKill && stats.Destroyed > 0 {
		bd.firstKill = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFirstKill,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("First ship destroyed, %d/%d remain", stats.Alive, stats.Total),
		})
	}

	if b := bd.checkKillStreak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if !bd.maneuvering && stats.Maneuvering {
		bd.maneuvering = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkManeuver,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Fleet maneuvering with %d ships", stats.Alive),
		})
	}

	if stats.Total > 0 {
		if !bd.halved && stats.Alive*2 <= stats.Total {
			bd.halved = true
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkFleetHalved,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("Fleet down to %d of %d", stats.Alive, stats.Total),
			})
		}
		if !bd.wiped && stats.Alive == 0 {
			bd.wiped = true
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkFleetWiped,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("All %d ships destroyed by %.1fs", stats.Total, stats.SimTimeSec),
			})
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkKillStreak fires when a window's kills reach at least 3 and double
// the rolling average.
func (bd *BookmarkDetector) checkKillStreak(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Kills < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Kills
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.Kills) > avg*2 {
		return &Bookmark{
			Type:        BookmarkKillStreak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d kills in one window (average %.1f)", stats.Kills, avg),
		}
	}
	return nil
}
