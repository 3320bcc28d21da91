package interactive

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/settings"
)

// ViewType represents the different views available in the TUI
type ViewType int

const (
	ViewCatalog ViewType = iota
	ViewSessions
	ViewPlugins
	ViewHistory
	ViewLogs
)

const (
	headerHeight = 3 // logo + crumbs + divider
	menuHeight   = 2 // divider + hints
)

// View interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	Name() string
	ShortHelp() string
}

// capturing views take every key while the user is typing
type capturing interface {
	Capturing() bool
}

// App is the main application model for the interactive TUI
type App struct {
	state      *State
	activeView ViewType
	views      []View
	width      int
	height     int
	styles     *Styles
	quitting   bool
	showHelp   bool
	spinner    spinner.Model
	startTime  time.Time
	toasts     toasts
}

// NewApp creates a new interactive application
func NewApp(state *State, styles *Styles) *App {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = styles.Spinner

	app := &App{
		state:      state,
		activeView: ViewCatalog,
		styles:     styles,
		width:      120,
		height:     30,
		spinner:    s,
		startTime:  time.Now(),
	}
	app.views = []View{
		NewCatalogView(state, styles),
		NewSessionsView(state, styles),
		NewPluginsView(state, styles),
		NewHistoryView(state, styles),
		NewLogsView(state, styles),
	}
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, loadCatalog(a.state)}
	if cmd := loadPlugins(a.state); cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, v := range a.views {
		if cmd := v.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) capturing() bool {
	if it, ok := a.views[a.activeView].(capturing); ok {
		return it.Capturing()
	}
	return false
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return a, tea.Quit
		}
		if !a.capturing() {
			if handled, cmd := a.globalKey(msg); handled {
				return a, cmd
			}
		}
		view, cmd := a.views[a.activeView].Update(msg)
		a.views[a.activeView] = view
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		msg.Height -= headerHeight + menuHeight
		msg.Width -= 2
		return a, a.broadcast(msg)

	case spinner.TickMsg:
		a.spinner, cmd = a.spinner.Update(msg)
		a.state.Frame = a.spinner.View()
		cmds = append(cmds, cmd)

	case catalogLoadedMsg:
		if msg.err != nil {
			cmds = append(cmds, ShowErrorToast("Command catalog unavailable"))
		} else {
			cmds = append(cmds, ShowSuccessToast(fmt.Sprintf("Loaded %d commands", a.state.Catalog.Len())))
		}

	case pluginsLoadedMsg:
		a.state.PluginsLoaded = true
		a.state.PluginsErr = msg.err
		if msg.err == nil {
			a.state.Plugins = msg.plugins
		} else {
			common.Uncritical("plugins", msg.err)
			cmds = append(cmds, ShowWarningToast("Plugin list unavailable"))
		}

	case openPanelMsg:
		a.activeView = ViewSessions

	case runFinishedMsg:
		if cmd := a.runToast(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ToastMsg:
		return a, a.toasts.push(msg)

	case ToastTimeoutMsg:
		a.toasts.expire(msg.ID)
		return a, nil
	}

	cmds = append(cmds, a.broadcast(msg))
	return a, tea.Batch(cmds...)
}

// broadcast hands non-key messages to every view
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range a.views {
		view, cmd := a.views[i].Update(msg)
		a.views[i] = view
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) globalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		a.quitting = true
		return true, tea.Quit
	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		return true, nil
	case key.Matches(msg, keys.ViewCatalog):
		a.activeView = ViewCatalog
	case key.Matches(msg, keys.ViewSessions):
		a.activeView = ViewSessions
	case key.Matches(msg, keys.ViewPlugins):
		a.activeView = ViewPlugins
	case key.Matches(msg, keys.ViewHistory):
		a.activeView = ViewHistory
	case key.Matches(msg, keys.ViewLogs):
		a.activeView = ViewLogs
	default:
		return false, nil
	}
	a.showHelp = false
	return true, nil
}

func (a *App) runToast(msg runFinishedMsg) tea.Cmd {
	done := msg.completion
	if !done.Applied {
		return nil
	}
	if _, failed := done.Response.(payload.Failure); failed || done.Err != nil {
		return ShowErrorToast(fmt.Sprintf("Panel %s failed", done.ID))
	}
	return ShowSuccessToast(fmt.Sprintf("Panel %s done in %s", done.ID, time.Duration(done.Elapsed).Round(time.Millisecond)))
}

// View implements tea.Model
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	contentHeight := a.height - headerHeight - menuHeight
	var content string
	if a.showHelp {
		content = a.renderHelp(contentHeight)
	} else {
		content = a.renderContent(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), content, a.renderMenu())
}

func (a *App) renderHeader() string {
	logo := a.renderLogo()
	status := a.renderStatus()

	gap := a.width - lipgloss.Width(logo) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", gap), status)
	divider := a.styles.Divider.Render(strings.Repeat("─", a.width))

	return lipgloss.JoinVertical(lipgloss.Left, topRow, a.renderCrumbs(), divider)
}

func (a *App) renderLogo() string {
	title := a.styles.LogoText.Render(" SAK ")
	subtitle := a.styles.LogoSubtle.Render("Dashboard")
	return lipgloss.JoinHorizontal(lipgloss.Center, a.spinner.View(), title, subtitle)
}

func (a *App) renderStatus() string {
	elapsed := time.Since(a.startTime).Round(time.Second)
	digest := a.state.Catalog.Digest()
	if len(digest) > 8 {
		digest = digest[:8]
	}
	if len(digest) == 0 {
		digest = "-"
	}

	endpoint := a.styles.StatusKey.Render("at:") + a.styles.StatusValue.Render(ansi.Truncate(settings.Global.Hostname(), 28, "…"))
	tree := a.styles.StatusKey.Render(" tree:") + a.styles.StatusValue.Render(digest)
	version := a.styles.StatusKey.Render(" ver:") + a.styles.StatusValue.Render(common.Version)
	uptime := a.styles.StatusKey.Render(" up:") + a.styles.StatusValue.Render(elapsed.String())

	return endpoint + tree + version + uptime + " "
}

func (a *App) renderCrumbs() string {
	root := a.styles.CrumbInactive.Render(" <sak> ")
	active := a.styles.CrumbActive.Render(fmt.Sprintf(" <%s> ", strings.ToLower(a.views[a.activeView].Name())))
	return root + active
}

func (a *App) renderContent(height int) string {
	content := a.views[a.activeView].View()
	if a.toasts.Len() > 0 {
		content = overlayRight(content, a.toasts.render(a.styles), a.width-2)
	}

	contentStyle := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		MaxHeight(height).
		PaddingLeft(1).
		PaddingRight(1)

	return contentStyle.Render(content)
}

// overlayRight puts box over the top right corner of content.
func overlayRight(content, box string, width int) string {
	lines := strings.Split(content, "\n")
	boxLines := strings.Split(box, "\n")
	for at, boxLine := range boxLines {
		if at >= len(lines) {
			lines = append(lines, "")
		}
		if boxLine == "" {
			continue
		}
		room := width - lipgloss.Width(boxLine)
		if room < 0 {
			room = 0
		}
		left := ansi.Truncate(lines[at], room, "")
		padding := room - lipgloss.Width(left)
		if padding < 0 {
			padding = 0
		}
		lines[at] = left + strings.Repeat(" ", padding) + boxLine
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderHelp(height int) string {
	var b strings.Builder

	b.WriteString(a.styles.Info.Render("####") + "  " + a.styles.PanelTitle.Render("Help") + "  " + a.styles.Info.Render("####"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{"Views", []struct{ key, desc string }{
			{"1", "Catalog - Browse the backend command tree"},
			{"2", "Panels - Fill in arguments, run and read results"},
			{"3", "Plugins - What the backend has loaded"},
			{"4", "History - Finished calls"},
			{"5", "Logs - Activity log"},
		}},
		{"Movement", []struct{ key, desc string }{
			{"j/↓ k/↑", "Move down / up"},
			{"h/← l/→", "Collapse / Expand"},
			{"g G", "Go to top / bottom"},
			{"ctrl+d ctrl+u", "Page down / up"},
		}},
		{"Panels", []struct{ key, desc string }{
			{"enter", "Open panel from catalog, edit or submit arguments"},
			{"tab", "Next argument field"},
			{"space ←/→", "Toggle or cycle choices"},
			{"r", "Run panel"},
			{"x", "Reset panel to defaults"},
			{"d", "Close panel"},
			{":", "Quick run: /path name=value ..."},
			{"c", "Toggle column totals chart"},
		}},
		{"Global", []struct{ key, desc string }{
			{"R", "Refresh current view"},
			{"?", "Toggle this help"},
			{"q", "Quit"},
			{"Ctrl+C", "Force quit"},
		}},
	}
	for _, section := range sections {
		b.WriteString(a.styles.PanelTitle.Render("    " + section.title))
		b.WriteString("\n\n")
		for _, k := range section.keys {
			b.WriteString("      " + a.styles.HelpKey.Render("<"+k.key+">") + " " + a.styles.HelpDesc.Render(k.desc) + "\n")
		}
		b.WriteString("\n")
	}

	contentStyle := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		MaxHeight(height).
		PaddingLeft(1).
		PaddingRight(1)

	return contentStyle.Render(b.String())
}

func (a *App) renderMenu() string {
	divider := a.styles.Divider.Render(strings.Repeat("─", a.width))
	return lipgloss.JoinVertical(lipgloss.Left, divider, a.buildHints())
}

func (a *App) buildHints() string {
	globalHints := []struct{ key, desc string }{
		{"1", "Catalog"},
		{"2", "Panels"},
		{"3", "Plugins"},
		{"4", "History"},
		{"5", "Logs"},
		{"?", "Help"},
		{"q", "Quit"},
	}

	var parts []string
	for _, hint := range strings.Fields(a.views[a.activeView].ShortHelp()) {
		name, desc, _ := strings.Cut(hint, ":")
		if name == "" {
			// the quick run hint is "::quick-run"
			name, desc = ":", strings.TrimPrefix(desc, ":")
		}
		parts = append(parts, a.formatHint(name, desc))
	}
	parts = append(parts, a.styles.MenuSeparator.Render(" │ "))
	for _, h := range globalHints {
		parts = append(parts, a.formatHint(h.key, h.desc))
	}

	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Left, parts...), a.width, "…")
}

func (a *App) formatHint(key, desc string) string {
	k := a.styles.MenuKey.Render("<" + key + ">")
	d := a.styles.MenuDesc.Render(desc)
	return k + d + " "
}

// Run starts the dashboard and blocks until the user quits. Log lines are
// captured into the state while the alternate screen is active.
func Run(state *State) error {
	common.SetLogInterceptor(state.Logs.Capture)
	defer common.ClearLogInterceptor()

	styles := NewStylesWithTheme(ThemeNamed(settings.Global.Theme()))
	program := tea.NewProgram(
		NewApp(state, styles),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
