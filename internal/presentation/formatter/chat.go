package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/presentation/display"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// ChatRenderer prints one conversation's timeline as a transcript: day
// separators centered, customer bubbles on the right, system bubbles on
// the left, each stamped with its HH:mm time.
type ChatRenderer struct {
	out   io.Writer
	width int
}

// NewChatRenderer creates a renderer sized to the current terminal.
func NewChatRenderer() *ChatRenderer {
	return &ChatRenderer{
		out:   os.Stdout,
		width: display.Width(),
	}
}

// SetOutput redirects the renderer, used by tests.
func (r *ChatRenderer) SetOutput(out io.Writer) {
	r.out = out
}

// SetWidth overrides the detected terminal width.
func (r *ChatRenderer) SetWidth(width int) {
	if width > 20 {
		r.width = width
	}
}

// Render prints the conversation header followed by its timeline entries.
func (r *ChatRenderer) Render(conv *conversation.Conversation, entries []conversation.TimelineEntry) error {
	phone := conv.CustomerPhone
	if phone == "" {
		phone = "no phone"
	}
	if _, err := fmt.Fprintf(r.out, "%s (%s) - %d messages\n", conv.DisplayName, phone, conv.Count); err != nil {
		return err
	}
	fmt.Fprintln(r.out, strings.Repeat("=", min(r.width, 80)))

	bubbleWidth := r.width * 2 / 3

	for _, entry := range entries {
		switch entry.Kind {
		case conversation.DayMarker:
			r.printDayMarker(entry.Label)
		case conversation.Bubble:
			r.printBubble(entry, bubbleWidth)
		}
	}

	return nil
}

func (r *ChatRenderer) printDayMarker(label string) {
	decorated := fmt.Sprintf("── %s ──", label)
	pad := (r.width - util.DisplayWidth(decorated)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(r.out, "\n%s%s\n", strings.Repeat(" ", pad), decorated)
}

func (r *ChatRenderer) printBubble(entry conversation.TimelineEntry, bubbleWidth int) {
	lines := wrapText(entry.Text, bubbleWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}

	if entry.Side == conversation.SideCustomer {
		// Customer messages hug the right edge.
		for _, line := range lines {
			pad := r.width - util.DisplayWidth(line)
			if pad < 0 {
				pad = 0
			}
			fmt.Fprintf(r.out, "%s%s\n", strings.Repeat(" ", pad), line)
		}
		stamp := "[" + entry.Time + "]"
		fmt.Fprintf(r.out, "%s%s\n", strings.Repeat(" ", max(r.width-len(stamp), 0)), stamp)
		return
	}

	for _, line := range lines {
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintf(r.out, "[%s]\n", entry.Time)
}

// wrapText word-wraps by display width so accented and wide characters do
// not break alignment.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if util.DisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case util.DisplayWidth(current)+1+util.DisplayWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
