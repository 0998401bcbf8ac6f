package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/conversation"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

const (
	maxNameWidth    = 28
	maxPreviewWidth = 44
)

// TableFormatter renders the conversation list as a bordered table, most
// recent conversation first.
type TableFormatter struct {
	out     io.Writer
	tp      *util.TimeProvider
	headers []string
}

// NewTableFormatter creates a table formatter writing to stdout.
func NewTableFormatter(tp *util.TimeProvider) *TableFormatter {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &TableFormatter{
		out:     os.Stdout,
		tp:      tp,
		headers: []string{"Customer", "Phone", "Msgs", "Last Activity", "Last Message"},
	}
}

// SetOutput redirects the formatter, used by tests.
func (f *TableFormatter) SetOutput(out io.Writer) {
	f.out = out
}

func (f *TableFormatter) Format(convs []*conversation.Conversation) error {
	if len(convs) == 0 {
		_, err := fmt.Fprintln(f.out, "No conversations found.")
		return err
	}

	rows := make([][]string, 0, len(convs))
	for _, conv := range convs {
		rows = append(rows, []string{
			util.TruncateText(conv.DisplayName, maxNameWidth),
			conv.CustomerPhone,
			fmt.Sprintf("%d", conv.Count),
			f.tp.Format(conv.LastActivity, "02/01/2006 15:04"),
			util.TruncateText(lastMessage(conv), maxPreviewWidth),
		})
	}

	widths := f.columnWidths(rows)

	f.printBorder(widths)
	f.printRow(f.headers, widths)
	f.printBorder(widths)
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths)

	_, err := fmt.Fprintf(f.out, "%d conversations\n", len(convs))
	return err
}

// lastMessage picks the preview text: the newest record's query, falling
// back to its answer.
func lastMessage(conv *conversation.Conversation) string {
	if len(conv.Records) == 0 {
		return ""
	}
	last := conv.Records[len(conv.Records)-1]
	if last.CustomerQuery != "" {
		return last.CustomerQuery
	}
	return last.RoutingAnswer
}

func (f *TableFormatter) columnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = util.DisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := util.DisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Fprintf(f.out, "+%s+\n", strings.Join(parts, "+"))
}

func (f *TableFormatter) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = " " + util.PadRight(cell, widths[i]) + " "
	}
	fmt.Fprintf(f.out, "|%s|\n", strings.Join(parts, "|"))
}
