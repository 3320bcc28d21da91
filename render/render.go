// Package render decides how a panel shows its response and draws it for
// the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/sakdash/payload"
)

type Mode int

const (
	ModeEmpty Mode = iota
	ModeSpinner
	ModeError
	ModeGrid
	ModeMarkup
	ModeImage
	ModeText
	ModeNothing
)

var modeNames = [...]string{"empty", "spinner", "error", "grid", "markup", "image", "text", "nothing"}

func (it Mode) String() string {
	if it < 0 || int(it) >= len(modeNames) {
		return "nothing"
	}
	return modeNames[it]
}

// ModeFor picks the rendering mode of a response. Unknown variants render
// nothing rather than failing.
func ModeFor(response payload.Response) Mode {
	switch response.(type) {
	case nil:
		return ModeEmpty
	case payload.Processing:
		return ModeSpinner
	case payload.Failure:
		return ModeError
	case payload.Table:
		return ModeGrid
	case payload.Markup:
		return ModeMarkup
	case payload.Image:
		return ModeImage
	case payload.Text:
		return ModeText
	}
	return ModeNothing
}

type Styles struct {
	Error  lipgloss.Style
	Faint  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style
	Bar    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
		Faint:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Bold(true),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
		Bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
	}
}

// PlainStyles draws without any colors, for pipes and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Error: plain, Faint: plain, Header: plain, Border: plain, Bar: plain}
}

type Options struct {
	Width   int
	Spinner string
	Chart   bool
	Styles  Styles
}

// Render draws the response for a panel of the given width.
func Render(response payload.Response, options Options) string {
	styles := options.Styles
	switch ModeFor(response) {
	case ModeSpinner:
		return strings.TrimSpace(options.Spinner + " Processing...")
	case ModeError:
		return styles.Error.Render(response.(payload.Failure).Status)
	case ModeGrid:
		table := response.(payload.Table)
		grid := Grid(table, options.Width, styles)
		if options.Chart {
			if chart := Chart(table, options.Width, styles); len(chart) > 0 {
				return grid + "\n\n" + chart
			}
		}
		return grid
	case ModeMarkup:
		return Markup(response.(payload.Markup).HTML, options.Width)
	case ModeImage:
		return styles.Faint.Render(ImageSummary(response.(payload.Image)))
	case ModeText:
		return response.(payload.Text).Value
	}
	return ""
}
