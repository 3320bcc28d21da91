package interactive

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/logbuf"
	"github.com/joshyorko/sakdash/session"
	"github.com/joshyorko/sakdash/settings"
)

const (
	logBufferSize     = 500
	maxHistoryEntries = 100
)

// Backend is everything the dashboard needs from the command server.
type Backend interface {
	catalog.TreeSource
	session.Invoker
	Plugins(ctx context.Context) ([]backend.Plugin, error)
	Endpoint() string
}

// State is owned by the App and shared by pointer with every view. It is
// only changed from inside Update, except for the session list which has
// its own lock.
type State struct {
	Backend       Backend
	Catalog       *catalog.Index
	Sessions      *session.List
	Plugins       []backend.Plugin
	PluginsErr    error
	PluginsLoaded bool
	History       *RunHistory
	Logs          *logbuf.LogBuffer

	// Frame is the current spinner frame, shown in processing panels.
	Frame string
}

func NewState(source Backend) *State {
	state := &State{
		Backend:  source,
		Catalog:  catalog.NewIndex(),
		Sessions: session.NewList(source),
		History:  NewRunHistory(maxHistoryEntries),
		Logs:     logbuf.NewLogBuffer(logBufferSize),
	}
	state.Sessions.OnComplete(state.History.Record)
	return state
}

type catalogLoadedMsg struct {
	err error
}

type pluginsLoadedMsg struct {
	plugins []backend.Plugin
	err     error
}

// openPanelMsg asks the sessions view to open a panel for path, apply the
// assignments on top of the argument defaults and optionally run it.
type openPanelMsg struct {
	path        string
	assignments []session.Assignment
	run         bool
}

type runFinishedMsg struct {
	completion session.Completion
}

func loadCatalog(state *State) tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: state.Catalog.Load(context.Background(), state.Backend)}
	}
}

func loadPlugins(state *State) tea.Cmd {
	if !settings.Global.PluginsEnabled() {
		return nil
	}
	return func() tea.Msg {
		plugins, err := state.Backend.Plugins(context.Background())
		return pluginsLoadedMsg{plugins: plugins, err: err}
	}
}

func openPanel(path string, assignments []session.Assignment, run bool) tea.Cmd {
	return func() tea.Msg {
		return openPanelMsg{path: path, assignments: assignments, run: run}
	}
}

// runPanel marks the panel as processing right away and leaves the
// network part to the returned command.
func runPanel(state *State, id session.ID) tea.Cmd {
	call, ok := state.Sessions.RunByID(context.Background(), id)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return runFinishedMsg{completion: call()}
	}
}

// openInto adds a panel for msg.path with its defaults and assignments.
func (it *State) openInto(msg openPanelMsg) (session.ID, error) {
	return it.Sessions.Open(it.Catalog, msg.path, msg.assignments)
}
