package formatter

import (
	"fmt"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// ListFormatter renders an aggregated conversation list.
type ListFormatter interface {
	Format(convs []*conversation.Conversation) error
}

// NewListFormatter selects a formatter by name.
func NewListFormatter(format string, tp *util.TimeProvider) (ListFormatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(tp), nil
	case "json":
		return NewJSONFormatter(tp), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (expected table or json)", format)
	}
}
