package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

func sampleConversations() []*conversation.Conversation {
	agg := conversation.NewAggregator(util.NewTimeProvider("UTC"))
	return agg.Aggregate([]model.InteractionRecord{
		{SessionID: "s1", CustomerPhone: "3233478550", CustomerName: "Jorman Viafara",
			Date: "2024-03-01 10:00:00", CustomerQuery: "necesito ayuda con mi pedido"},
		{SessionID: "s2", Date: "2024-03-02 09:00:00", RoutingAnswer: "bienvenido"},
	}, "")
}

func TestTableFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(util.NewTimeProvider("UTC"))
	f.SetOutput(&buf)

	require.NoError(t, f.Format(sampleConversations()))
	out := buf.String()

	assert.Contains(t, out, "Customer")
	assert.Contains(t, out, "Jorman Viafara")
	assert.Contains(t, out, "3233478550")
	assert.Contains(t, out, conversation.AnonymousName)
	assert.Contains(t, out, "necesito ayuda con mi pedido")
	assert.Contains(t, out, "01/03/2024 10:00")
	assert.Contains(t, out, "2 conversations")
}

func TestTableFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(util.NewTimeProvider("UTC"))
	f.SetOutput(&buf)

	require.NoError(t, f.Format(nil))
	assert.Contains(t, buf.String(), "No conversations found.")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(util.NewTimeProvider("UTC"))
	f.SetOutput(&buf)

	require.NoError(t, f.Format(sampleConversations()))
	out := buf.String()

	assert.Contains(t, out, `"id": "3233478550"`)
	assert.Contains(t, out, `"display_name": "Jorman Viafara"`)
	assert.Contains(t, out, `"last_activity": "2024-03-01T10:00:00Z"`)
	assert.Contains(t, out, `"customer_query": "necesito ayuda con mi pedido"`)
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(util.NewTimeProvider("UTC"))
	f.SetOutput(&buf)

	require.NoError(t, f.Format(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestNewListFormatter(t *testing.T) {
	tp := util.NewTimeProvider("UTC")

	f, err := NewListFormatter("table", tp)
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)

	f, err = NewListFormatter("json", tp)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	f, err = NewListFormatter("", tp)
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)

	_, err = NewListFormatter("csv", tp)
	assert.Error(t, err)
}
