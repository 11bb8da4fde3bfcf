package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/itemfield/probe"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkClimateShift  BookmarkType = "climate_shift"
	BookmarkRegrowthShift BookmarkType = "regrowth_shift"
	BookmarkDrought       BookmarkType = "drought"
	BookmarkDownpour      BookmarkType = "downpour"
)

// Bookmark marks a tick where the timeline changed in a notable way.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Source      string       `csv:"source"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"source", b.Source,
		"description", b.Description,
	)
}

// BookmarkDetector scans a timeline tick by tick.
type BookmarkDetector struct {
	// Rolling precipitation history (circular buffer)
	history     []float64
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	last       map[string]float64 // previous value per source
	dryTicks   int                // consecutive ticks with no precipitation
	droughtHit bool               // drought already reported for this dry spell
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for drought detection
	}
	return &BookmarkDetector{
		history:     make([]float64, historySize),
		historySize: historySize,
		last:        make(map[string]float64),
	}
}

// Check analyzes one tick's samples and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(samples []probe.TimelineSample) []Bookmark {
	var bookmarks []Bookmark

	for _, s := range samples {
		prev, seen := bd.last[s.Source]
		bd.last[s.Source] = s.Value

		if s.Source != probe.SourcePrecipitation {
			if seen && prev != s.Value {
				bookmarks = append(bookmarks, Bookmark{
					Type:        BookmarkRegrowthShift,
					Tick:        s.Tick,
					Source:      s.Source,
					Description: fmt.Sprintf("Regeneration changed from %g to %g", prev, s.Value),
				})
			}
			continue
		}

		if seen && prev != s.Value {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkClimateShift,
				Tick:        s.Tick,
				Source:      s.Source,
				Description: fmt.Sprintf("Precipitation changed from %g to %g", prev, s.Value),
			})
		}
		if b := bd.checkDownpour(s); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkDrought(s); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		bd.addToHistory(s.Value)
	}

	return bookmarks
}

// Detect runs a detector over a whole timeline.
func Detect(samples []probe.TimelineSample, historySize int) []Bookmark {
	bd := NewBookmarkDetector(historySize)
	var out []Bookmark
	for start := 0; start < len(samples); {
		end := start + 1
		for end < len(samples) && samples[end].Tick == samples[start].Tick {
			end++
		}
		out = append(out, bd.Check(samples[start:end])...)
		start = end
	}
	return out
}

func (bd *BookmarkDetector) addToHistory(v float64) {
	bd.history[bd.historyIdx] = v
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []float64 {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkDownpour fires when precipitation exceeds twice its rolling average.
func (bd *BookmarkDetector) checkDownpour(s probe.TimelineSample) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if s.Value > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkDownpour,
			Tick:        s.Tick,
			Source:      s.Source,
			Description: fmt.Sprintf("Precipitation %g is %.1fx average (%.2f)", s.Value, s.Value/avg, avg),
		}
	}
	return nil
}

// checkDrought fires once per dry spell lasting a full history window.
func (bd *BookmarkDetector) checkDrought(s probe.TimelineSample) *Bookmark {
	if s.Value > 0 {
		bd.dryTicks = 0
		bd.droughtHit = false
		return nil
	}

	bd.dryTicks++
	if bd.dryTicks >= bd.historySize && !bd.droughtHit {
		bd.droughtHit = true
		return &Bookmark{
			Type:        BookmarkDrought,
			Tick:        s.Tick,
			Source:      s.Source,
			Description: fmt.Sprintf("No precipitation for %d ticks", bd.dryTicks),
		}
	}
	return nil
}
