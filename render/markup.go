package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	breaking = map[atom.Atom]bool{
		atom.P: true, atom.Div: true, atom.Br: true, atom.Tr: true,
		atom.Ul: true, atom.Ol: true, atom.Table: true, atom.Pre: true,
		atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
		atom.H5: true, atom.H6: true, atom.Hr: true, atom.Section: true,
		atom.Blockquote: true,
	}
	hidden = map[atom.Atom]bool{
		atom.Script: true, atom.Style: true, atom.Head: true, atom.Title: true,
	}
)

type flattener struct {
	lines   []string
	current strings.Builder
	hiding  int
	pre     int
}

func (it *flattener) breakLine() {
	line := strings.TrimRight(it.current.String(), " ")
	it.current.Reset()
	if len(line) > 0 {
		it.lines = append(it.lines, line)
	}
}

func (it *flattener) text(content string) {
	if it.hiding > 0 {
		return
	}
	if it.pre > 0 {
		parts := strings.Split(content, "\n")
		for at, part := range parts {
			if at > 0 {
				it.lines = append(it.lines, it.current.String())
				it.current.Reset()
			}
			it.current.WriteString(part)
		}
		return
	}
	words := strings.Fields(content)
	if len(words) == 0 {
		if it.current.Len() > 0 && len(content) > 0 {
			it.space()
		}
		return
	}
	if startsWithSpace(content) {
		it.space()
	}
	it.current.WriteString(strings.Join(words, " "))
	if endsWithSpace(content) {
		it.space()
	}
}

func (it *flattener) space() {
	text := it.current.String()
	if len(text) > 0 && !strings.HasSuffix(text, " ") {
		it.current.WriteString(" ")
	}
}

func startsWithSpace(text string) bool {
	return len(text) > 0 && strings.ContainsAny(text[:1], " \t\r\n")
}

func endsWithSpace(text string) bool {
	return len(text) > 0 && strings.ContainsAny(text[len(text)-1:], " \t\r\n")
}

// Flatten reduces trusted HTML to readable text lines. Block elements end
// lines and list items get a bullet. Table cells are joined with a bar,
// script and style content is dropped.
func Flatten(content string) []string {
	state := &flattener{}
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		kind := tokenizer.Next()
		switch kind {
		case html.ErrorToken:
			state.breakLine()
			return state.lines
		case html.TextToken:
			state.text(string(tokenizer.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tag := atom.Lookup(name)
			switch {
			case hidden[tag]:
				if kind == html.StartTagToken {
					state.hiding++
				}
			case tag == atom.Li:
				state.breakLine()
				state.current.WriteString("• ")
			case tag == atom.Td || tag == atom.Th:
				cells := strings.TrimRight(state.current.String(), " ")
				state.current.Reset()
				if len(cells) > 0 {
					state.current.WriteString(cells + " | ")
				}
			case breaking[tag]:
				state.breakLine()
				if tag == atom.Pre && kind == html.StartTagToken {
					state.pre++
				}
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := atom.Lookup(name)
			switch {
			case hidden[tag]:
				if state.hiding > 0 {
					state.hiding--
				}
			case tag == atom.Pre:
				if state.pre > 0 {
					state.pre--
				}
				state.breakLine()
			case tag == atom.Li || breaking[tag]:
				state.breakLine()
			}
		}
	}
}

// Markup flattens HTML and wraps it to width.
func Markup(content string, width int) string {
	text := strings.Join(Flatten(content), "\n")
	if width <= 0 {
		return text
	}
	return ansi.Wordwrap(text, width, "")
}
