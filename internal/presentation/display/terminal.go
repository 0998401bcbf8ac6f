package display

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 100

// Width returns the terminal column count, or a sane default when stdout
// is not a terminal (pipes, CI).
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
