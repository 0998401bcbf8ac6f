package formatter

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// JSONFormatter emits the conversation list as indented JSON for piping
// into other tools.
type JSONFormatter struct {
	out io.Writer
	tp  *util.TimeProvider
}

// NewJSONFormatter creates a JSON formatter writing to stdout.
func NewJSONFormatter(tp *util.TimeProvider) *JSONFormatter {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &JSONFormatter{out: os.Stdout, tp: tp}
}

// SetOutput redirects the formatter, used by tests.
func (f *JSONFormatter) SetOutput(out io.Writer) {
	f.out = out
}

type conversationJSON struct {
	ID            string       `json:"id"`
	DisplayName   string       `json:"display_name"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	Count         int          `json:"count"`
	LastActivity  string       `json:"last_activity"`
	Records       []recordJSON `json:"records"`
}

type recordJSON struct {
	SessionID     string `json:"session_id"`
	Timestamp     string `json:"timestamp"`
	CustomerQuery string `json:"customer_query,omitempty"`
	RoutingAnswer string `json:"routing_answer,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

func (f *JSONFormatter) Format(convs []*conversation.Conversation) error {
	out := make([]conversationJSON, 0, len(convs))
	for _, conv := range convs {
		records := make([]recordJSON, 0, len(conv.Records))
		for _, rec := range conv.Records {
			records = append(records, recordJSON{
				SessionID:     rec.SessionID,
				Timestamp:     f.tp.In(rec.Timestamp).Format(time.RFC3339),
				CustomerQuery: rec.CustomerQuery,
				RoutingAnswer: rec.RoutingAnswer,
				Channel:       rec.Channel,
			})
		}
		out = append(out, conversationJSON{
			ID:            conv.ID,
			DisplayName:   conv.DisplayName,
			CustomerPhone: conv.CustomerPhone,
			Count:         conv.Count,
			LastActivity:  f.tp.In(conv.LastActivity).Format(time.RFC3339),
			Records:       records,
		})
	}

	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
