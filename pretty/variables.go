package pretty

import (
	"fmt"
	"os"

	"github.com/joshyorko/sakdash/common"
	"github.com/mattn/go-isatty"
)

var (
	Colorless   bool
	Disabled    bool
	Interactive bool
	Mode        ColorMode
	White       string
	Grey        string
	Red         string
	Green       string
	Blue        string
	Yellow      string
	Cyan        string
	Reset       string
	Bold        string
	Faint       string
)

func csi(code string) string {
	return fmt.Sprintf("\x1b[%s", code)
}

func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	Mode = DetectColorMode()
	Colorless = Colorless || Mode == ColorModeNone

	// prompts need all three streams, colors only need stdout
	Interactive = stdin && stdout && stderr
	visualOutput := stdout && !Colorless

	common.Trace("Interactive mode enabled: %v; colors enabled: %v; color mode: %s", Interactive, visualOutput && !Disabled, Mode)
	if visualOutput && !Disabled {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Yellow = csi("93m")
		Blue = csi("94m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Bold = csi("1m")
		Faint = csi("2m")
	}
}
