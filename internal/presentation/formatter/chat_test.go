package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

func renderSample(t *testing.T) string {
	t.Helper()

	tp := util.NewTimeProvider("UTC")
	convs := conversation.NewAggregator(tp).Aggregate([]model.InteractionRecord{
		{SessionID: "s1", CustomerPhone: "555", CustomerName: "Ana",
			Date: "2024-03-08 09:05:00", CustomerQuery: "how much?", RoutingAnswer: "it costs 10"},
		{SessionID: "s1", CustomerPhone: "555",
			Date: "2024-03-10 10:00:00", CustomerQuery: "thanks"},
	}, "")
	require.Len(t, convs, 1)

	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	entries := conversation.NewSegmenter(tp).
		WithNow(func() time.Time { return now }).
		Segment(convs[0])

	var buf bytes.Buffer
	r := NewChatRenderer()
	r.SetOutput(&buf)
	r.SetWidth(60)
	require.NoError(t, r.Render(convs[0], entries))
	return buf.String()
}

func TestChatRender(t *testing.T) {
	out := renderSample(t)

	assert.Contains(t, out, "Ana (555) - 2 messages")
	assert.Contains(t, out, "── 08/03/2024 ──")
	assert.Contains(t, out, "── Today ──")
	assert.Contains(t, out, "how much?")
	assert.Contains(t, out, "it costs 10")
	assert.Contains(t, out, "[09:05]")
	assert.Contains(t, out, "[10:00]")
}

func TestChatRenderSides(t *testing.T) {
	out := renderSample(t)

	for _, line := range strings.Split(out, "\n") {
		// System bubbles sit flush left, customer bubbles are indented.
		if strings.Contains(line, "it costs 10") {
			assert.False(t, strings.HasPrefix(line, " "), "system bubble should be flush left: %q", line)
		}
		if strings.Contains(line, "how much?") {
			assert.True(t, strings.HasPrefix(line, " "), "customer bubble should be right aligned: %q", line)
		}
	}
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))

	lines := wrapText("one two three four five six seven", 10)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, util.DisplayWidth(line), 10)
	}
}
