// Package conversation turns the flat interaction batches returned by the
// reporting API into per-customer conversations ordered for display.
package conversation

import (
	"sort"
	"strings"
	"time"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// AnonymousName is the display name used when no record in a conversation
// carries a customer name.
const AnonymousName = "Anonymous User"

// Record pairs an upstream interaction with its parsed timestamp. Records
// whose date string does not parse keep a zero timestamp instead of being
// dropped, so every input record stays in exactly one conversation.
type Record struct {
	model.InteractionRecord
	Timestamp time.Time
}

// Conversation is the set of records sharing a grouping key, rebuilt fresh
// on every aggregation call. There is no identity across calls.
type Conversation struct {
	ID            string
	DisplayName   string
	CustomerPhone string
	Records       []Record
	LastActivity  time.Time
	Count         int
}

// Aggregator groups interaction records into conversations. It holds no
// state across calls beyond the timezone used to parse record dates.
type Aggregator struct {
	tp *util.TimeProvider
}

// NewAggregator creates an aggregator that interprets record timestamps in
// the provider's location.
func NewAggregator(tp *util.TimeProvider) *Aggregator {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &Aggregator{tp: tp}
}

// groupKey selects the conversation a record belongs to: the customer
// phone when present, otherwise the session id.
func groupKey(rec model.InteractionRecord) string {
	if rec.CustomerPhone != "" {
		return rec.CustomerPhone
	}
	return rec.SessionID
}

// Aggregate partitions records into conversations, time-orders each one,
// applies the phone filter, and returns the result most recent first.
// Identical inputs always yield an identical output sequence.
func (a *Aggregator) Aggregate(records []model.InteractionRecord, filter string) []*Conversation {
	groups := make(map[string]*Conversation, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		key := groupKey(rec)

		ts, err := ParseRecordTime(rec.Date, a.tp.Location())
		if err != nil {
			util.LogWarnf("unparseable record date %q in session %s", rec.Date, rec.SessionID)
		}

		conv, ok := groups[key]
		if !ok {
			conv = &Conversation{
				ID:            key,
				DisplayName:   AnonymousName,
				CustomerPhone: rec.CustomerPhone,
				LastActivity:  ts,
			}
			groups[key] = conv
			order = append(order, key)
		}

		if conv.DisplayName == AnonymousName && rec.CustomerName != "" {
			conv.DisplayName = rec.CustomerName
		}

		conv.Records = append(conv.Records, Record{InteractionRecord: rec, Timestamp: ts})
		conv.Count++
		// Input batches are not pre-sorted, so the last activity must be
		// recomputed against every record.
		if ts.After(conv.LastActivity) {
			conv.LastActivity = ts
		}
	}

	result := make([]*Conversation, 0, len(order))
	for _, key := range order {
		conv := groups[key]

		sort.SliceStable(conv.Records, func(i, j int) bool {
			return conv.Records[i].Timestamp.Before(conv.Records[j].Timestamp)
		})

		// Case-sensitive substring match on the phone. An empty filter
		// matches everything; a conversation without a phone never matches
		// a non-empty filter.
		if !strings.Contains(conv.CustomerPhone, filter) {
			continue
		}

		result = append(result, conv)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})

	return result
}
