package pretty

import (
	"os"

	"github.com/joshyorko/sakdash/common"
	"golang.org/x/term"
)

// TerminalWidth returns the terminal width in columns, or 80 when stdout
// is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		common.Trace("Failed to get terminal width, using fallback: %v", err)
		return 80
	}
	return width
}
