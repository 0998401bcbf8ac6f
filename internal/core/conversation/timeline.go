package conversation

import (
	"time"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// EntryKind distinguishes timeline entry types.
type EntryKind int

const (
	// DayMarker is a synthetic separator inserted before the first record
	// of each distinct calendar day.
	DayMarker EntryKind = iota
	// Bubble is one rendered message, either side of the exchange.
	Bubble
)

// Side identifies who produced a bubble.
type Side string

const (
	SideCustomer Side = "customer"
	SideSystem   Side = "system"
)

// TimelineEntry is one rendering-ready element of a conversation timeline.
// DayMarker entries carry Label; Bubble entries carry Side, Text and Time.
type TimelineEntry struct {
	Kind  EntryKind
	Label string
	Side  Side
	Text  string
	Time  string
}

// Segmenter converts a time-sorted conversation into timeline entries with
// day separators. The reference "now" is injectable so Today/Yesterday
// labels are deterministic under test.
type Segmenter struct {
	tp  *util.TimeProvider
	now func() time.Time
}

// NewSegmenter creates a segmenter using the provider's timezone and clock.
func NewSegmenter(tp *util.TimeProvider) *Segmenter {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &Segmenter{tp: tp, now: tp.Now}
}

// WithNow overrides the reference clock.
func (s *Segmenter) WithNow(now func() time.Time) *Segmenter {
	s.now = now
	return s
}

// Segment produces the rendering sequence for a conversation. A day marker
// precedes the first record of each calendar day; a record contributes a
// customer bubble for its query and a system bubble for its answer, each
// stamped HH:mm. A record with neither still advances day segmentation.
func (s *Segmenter) Segment(conv *Conversation) []TimelineEntry {
	if conv == nil || len(conv.Records) == 0 {
		return []TimelineEntry{}
	}

	now := s.now()
	entries := make([]TimelineEntry, 0, len(conv.Records)*2)

	var prev *Record
	for i := range conv.Records {
		rec := &conv.Records[i]

		if prev == nil || !s.tp.SameDay(prev.Timestamp, rec.Timestamp) {
			entries = append(entries, TimelineEntry{
				Kind:  DayMarker,
				Label: s.tp.DayLabel(rec.Timestamp, now),
			})
		}
		prev = rec

		stamp := s.tp.Format(rec.Timestamp, "15:04")
		if rec.CustomerQuery != "" {
			entries = append(entries, TimelineEntry{
				Kind: Bubble,
				Side: SideCustomer,
				Text: rec.CustomerQuery,
				Time: stamp,
			})
		}
		if rec.RoutingAnswer != "" {
			entries = append(entries, TimelineEntry{
				Kind: Bubble,
				Side: SideSystem,
				Text: rec.RoutingAnswer,
				Time: stamp,
			})
		}
	}

	return entries
}
