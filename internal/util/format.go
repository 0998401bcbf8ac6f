package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the terminal cell width of s. Customer names and
// queries routinely carry accented and wide characters, so byte or rune
// counts are not usable for column math.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to the given display width.
func PadRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// TruncateText shortens s to at most width display cells, appending an
// ellipsis when anything was cut.
func TruncateText(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}
