package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshyorko/sakdash/catalog"
)

type treeRow struct {
	node  *catalog.CommandNode
	depth int
}

// CatalogView displays the backend command tree
type CatalogView struct {
	state    *State
	styles   *Styles
	width    int
	height   int
	rows     []treeRow
	expanded map[string]bool
	selected int
	offset   int
	loading  bool
	err      error
}

// NewCatalogView creates a new catalog view
func NewCatalogView(state *State, styles *Styles) *CatalogView {
	return &CatalogView{
		state:    state,
		styles:   styles,
		width:    120,
		height:   30,
		expanded: make(map[string]bool),
		loading:  true,
	}
}

// Init implements View
func (v *CatalogView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *CatalogView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case catalogLoadedMsg:
		v.loading = false
		v.err = msg.err
		if root := v.state.Catalog.Root(); root != nil {
			if _, seen := v.expanded[root.Path]; !seen {
				v.expanded[root.Path] = true
			}
		}
		v.rebuild()
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *CatalogView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Down):
		v.move(1)
	case key.Matches(msg, keys.Up):
		v.move(-1)
	case key.Matches(msg, keys.PageDown):
		v.move(v.visibleRows())
	case key.Matches(msg, keys.PageUp):
		v.move(-v.visibleRows())
	case key.Matches(msg, keys.Top):
		v.move(-len(v.rows))
	case key.Matches(msg, keys.Bottom):
		v.move(len(v.rows))
	case key.Matches(msg, keys.Right):
		v.expand(true)
	case key.Matches(msg, keys.Left):
		v.collapseOrParent()
	case key.Matches(msg, keys.Select):
		node := v.Selected()
		if node == nil {
			return nil
		}
		if node.IsCallable {
			return openPanel(node.Path, nil, false)
		}
		v.expand(!v.expanded[node.Path])
	case key.Matches(msg, keys.Run):
		if node := v.Selected(); node != nil && node.IsCallable {
			return openPanel(node.Path, nil, true)
		}
	case key.Matches(msg, keys.Refresh):
		v.loading = true
		return loadCatalog(v.state)
	}
	return nil
}

// rebuild recomputes the visible rows from the expanded set.
func (v *CatalogView) rebuild() {
	var current string
	if node := v.Selected(); node != nil {
		current = node.Path
	}
	v.rows = v.rows[:0]
	root := v.state.Catalog.Root()
	if root != nil {
		v.collect(root, 0)
	}
	v.selected = 0
	for at, row := range v.rows {
		if row.node.Path == current {
			v.selected = at
			break
		}
	}
	v.scroll()
}

func (v *CatalogView) collect(node *catalog.CommandNode, depth int) {
	v.rows = append(v.rows, treeRow{node: node, depth: depth})
	if !v.expanded[node.Path] {
		return
	}
	for _, child := range node.SubCmds {
		v.collect(child, depth+1)
	}
}

func (v *CatalogView) move(delta int) {
	if len(v.rows) == 0 {
		return
	}
	v.selected += delta
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= len(v.rows) {
		v.selected = len(v.rows) - 1
	}
	v.scroll()
}

func (v *CatalogView) scroll() {
	visible := v.visibleRows()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+visible {
		v.offset = v.selected - visible + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *CatalogView) visibleRows() int {
	rows := v.height - 8
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (v *CatalogView) expand(open bool) {
	node := v.Selected()
	if node == nil || len(node.SubCmds) == 0 {
		return
	}
	v.expanded[node.Path] = open
	v.rebuild()
}

func (v *CatalogView) collapseOrParent() {
	if len(v.rows) == 0 {
		return
	}
	row := v.rows[v.selected]
	if v.expanded[row.node.Path] && len(row.node.SubCmds) > 0 {
		v.expand(false)
		return
	}
	for at := v.selected - 1; at >= 0; at-- {
		if v.rows[at].depth < row.depth {
			v.selected = at
			v.scroll()
			return
		}
	}
}

// Selected returns the node under the cursor, if any.
func (v *CatalogView) Selected() *catalog.CommandNode {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return nil
	}
	return v.rows[v.selected].node
}

// View implements View
func (v *CatalogView) View() string {
	var b strings.Builder

	contentHeight := v.height - 5
	if contentHeight < 5 {
		contentHeight = 5
	}
	treeWidth := v.width / 2
	if v.width < 80 {
		treeWidth = v.width - 4
	}
	detailWidth := v.width - treeWidth - 6

	b.WriteString(v.styles.PanelTitle.Render("Command Catalog"))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtle.Render(v.subtitle()))
	b.WriteString("\n\n")

	tree := v.buildTreeView(treeWidth - 4)
	if node := v.Selected(); node != nil && v.width >= 80 {
		left := v.styles.Panel.Width(treeWidth).Height(contentHeight).Render(tree)
		right := v.styles.Panel.Width(detailWidth).Height(contentHeight).Render(v.buildDetailPanel(node, detailWidth-4))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	} else {
		b.WriteString(v.styles.Panel.Width(v.width - 4).Height(contentHeight).Render(tree))
	}
	return b.String()
}

func (v *CatalogView) subtitle() string {
	switch {
	case v.loading:
		return "Loading command tree from " + v.state.Backend.Endpoint() + " ..."
	case v.err != nil:
		return "Command tree unavailable, press R to retry"
	default:
		return fmt.Sprintf("%d commands, %d callable", v.state.Catalog.Len(), len(v.state.Catalog.Callable()))
	}
}

func (v *CatalogView) buildTreeView(width int) string {
	if len(v.rows) == 0 {
		if v.err != nil {
			return v.styles.Error.Render(ansi.Wordwrap(v.err.Error(), width, " /"))
		}
		return v.styles.Subtle.Render("No commands yet...")
	}
	var b strings.Builder
	end := v.offset + v.visibleRows()
	if end > len(v.rows) {
		end = len(v.rows)
	}
	for at := v.offset; at < end; at++ {
		row := v.rows[at]
		indent := strings.Repeat("  ", row.depth)
		icon := "   "
		if len(row.node.SubCmds) > 0 {
			icon = "[+]"
			if v.expanded[row.node.Path] {
				icon = "[-]"
			}
		}
		label := row.node.Title()
		line := v.styles.TreeBranch.Render(indent+"├─") + " "
		switch {
		case at == v.selected:
			line += v.styles.ListItemSelected.Render(icon + " " + label)
		case row.node.IsCallable:
			line += v.styles.TreeBranch.Render(icon+" ") + v.styles.TreeLeaf.Render(label)
		default:
			line += v.styles.Title.Render(icon+" ") + v.styles.TreeBranch.Render(label)
		}
		if count := len(row.node.SubCmds); count > 0 {
			line += v.styles.Subtle.Render(fmt.Sprintf(" (%d)", count))
		}
		b.WriteString(ansi.Truncate(line, width, "…"))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *CatalogView) buildDetailPanel(node *catalog.CommandNode, width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Highlight.Render(node.Title()))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtle.Render(node.Path))
	b.WriteString("\n\n")

	if len(node.HelpMsg) > 0 {
		b.WriteString(v.styles.ListItemDesc.Render(ansi.Wordwrap(node.HelpMsg, width, " ")))
		b.WriteString("\n\n")
	}

	if !node.IsCallable {
		b.WriteString(v.styles.Subtle.Render(fmt.Sprintf("Group with %d subcommands", len(node.SubCmds))))
		return b.String()
	}

	if len(node.Args) == 0 {
		b.WriteString(v.styles.Subtle.Render("No arguments"))
		b.WriteString("\n")
	} else {
		b.WriteString(v.styles.Subtle.Render("Arguments:"))
		b.WriteString("\n")
	}
	for _, arg := range node.Args {
		kind := arg.Type
		if arg.Kind() == catalog.KindUnsupported {
			kind += " (unsupported)"
		}
		b.WriteString("  " + v.styles.Accent.Render(arg.Name) + " " + v.styles.Subtle.Render(kind))
		if values := arg.DefaultValues(); len(values) > 0 {
			b.WriteString(v.styles.Subtle.Render(" = " + strings.Join(values, ", ")))
		}
		b.WriteString("\n")
		if arg.HasChoices() {
			b.WriteString("    " + v.styles.ListItemDesc.Render("one of: "+strings.Join(arg.Choices, ", ")) + "\n")
		}
		if len(arg.Help) > 0 {
			b.WriteString("    " + v.styles.ListItemDesc.Render(ansi.Truncate(arg.Help, width-4, "…")) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Success.Render("Enter") + " " + v.styles.Subtle.Render("to open a panel") + "  ")
	b.WriteString(v.styles.Success.Render("r") + " " + v.styles.Subtle.Render("to open and run"))
	return b.String()
}

// Name implements View
func (v *CatalogView) Name() string {
	return "Catalog"
}

// ShortHelp implements View
func (v *CatalogView) ShortHelp() string {
	return "j/k:nav l/h:expand enter:open r:run R:reload"
}
