package interactive

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/session"
)

type fakeBackend struct {
	tree    *catalog.CommandNode
	treeErr error
	failing bool
}

func (it *fakeBackend) CommandTree(ctx context.Context) (*catalog.CommandNode, error) {
	return it.tree, it.treeErr
}

func (it *fakeBackend) Invoke(ctx context.Context, path string, params url.Values) (payload.Response, error) {
	if it.failing {
		return nil, errors.New("backend exploded")
	}
	return payload.Text{Value: path + ":" + params.Get("msg")}, nil
}

func (it *fakeBackend) Plugins(ctx context.Context) ([]backend.Plugin, error) {
	return []backend.Plugin{{Name: "demo", Path: "/plugins/demo"}}, nil
}

func (it *fakeBackend) Endpoint() string {
	return "http://sak.test"
}

func sampleTree() *catalog.CommandNode {
	return &catalog.CommandNode{
		Path: "/root",
		Name: "sak",
		SubCmds: []*catalog.CommandNode{
			{
				Path:       "/root/echo",
				Name:       "echo",
				IsCallable: true,
				Args: []catalog.ArgSpec{
					{Name: "msg", Type: catalog.TypeString, Default: "hello"},
					{Name: "loud", Type: catalog.TypeBool},
					{Name: "shape", Type: "polygon"},
				},
			},
			{
				Path: "/root/group",
				Name: "group",
				SubCmds: []*catalog.CommandNode{
					{Path: "/root/group/leaf", Name: "leaf", IsCallable: true},
				},
			},
		},
	}
}

func loadedState(t *testing.T, fake *fakeBackend) *State {
	must_be, _ := hamlet.Specifications(t)

	state := NewState(fake)
	msg, ok := loadCatalog(state)().(catalogLoadedMsg)
	must_be.True(ok)
	must_be.Nil(msg.err)
	return state
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func typeInto(view View, text string) View {
	for _, letter := range text {
		if letter == ' ' {
			view, _ = view.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		view, _ = view.Update(runes(string(letter)))
	}
	return view
}

// drain executes cmd and every command it batches, collecting messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var result []tea.Msg
		for _, inner := range batch {
			result = append(result, drain(inner)...)
		}
		return result
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](messages []tea.Msg) (T, bool) {
	for _, msg := range messages {
		if found, ok := msg.(T); ok {
			return found, true
		}
	}
	var empty T
	return empty, false
}

func TestOpeningPanelsFromState(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})

	_, err := state.openInto(openPanelMsg{path: "/root/missing"})
	wont_be.Nil(err)
	must_be.Equal(0, state.Sessions.Len())

	_, err = state.openInto(openPanelMsg{path: "/root/group"})
	wont_be.Nil(err)
	must_be.Equal(0, state.Sessions.Len())

	id, err := state.openInto(openPanelMsg{path: "/root/echo"})
	must_be.Nil(err)
	entry, ok := state.Sessions.FindByID(id)
	must_be.True(ok)
	must_be.Equal("hello", entry.Params.Get("msg"))

	node, _ := state.Catalog.Lookup("/root/echo")
	must_be.Same(node, entry.Cmd)
}

func TestRunPanelShowsProcessingFirst(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})
	id, err := state.openInto(openPanelMsg{path: "/root/echo"})
	must_be.Nil(err)

	cmd := runPanel(state, id)
	wont_be.Nil(cmd)
	entry, _ := state.Sessions.FindByID(id)
	must_be.Equal(payload.Processing{}, entry.Response)

	done, ok := cmd().(runFinishedMsg)
	must_be.True(ok)
	must_be.True(done.completion.Applied)
	entry, _ = state.Sessions.FindByID(id)
	must_be.Equal(payload.Text{Value: "/root/echo:hello"}, entry.Response)
	must_be.Equal(1, state.History.Len())
	must_be.Equal(RunSuccess, state.History.GetLastRun().Status)

	must_be.Nil(runPanel(state, 999))
}

func TestCatalogViewNavigation(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := NewState(&fakeBackend{tree: sampleTree()})
	view := NewCatalogView(state, NewStyles())
	must_be.Contains("Loading", view.View())

	var current View = view
	current, _ = current.Update(loadCatalog(state)())
	must_be.Length(3, view.rows)
	must_be.Equal("/root", view.Selected().Path)

	current, _ = current.Update(runes("j"))
	must_be.Equal("/root/echo", view.Selected().Path)

	_, cmd := current.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wont_be.Nil(cmd)
	opened, ok := cmd().(openPanelMsg)
	must_be.True(ok)
	must_be.Equal("/root/echo", opened.path)
	wont_be.True(opened.run)

	_, cmd = current.Update(runes("r"))
	opened, _ = cmd().(openPanelMsg)
	must_be.True(opened.run)

	current, _ = current.Update(runes("j"))
	current, _ = current.Update(runes("l"))
	must_be.Length(4, view.rows)
	current, _ = current.Update(runes("j"))
	must_be.Equal("/root/group/leaf", view.Selected().Path)

	current, _ = current.Update(runes("h"))
	must_be.Equal("/root/group", view.Selected().Path)
	current.Update(runes("h"))
	must_be.Length(3, view.rows)

	must_be.Contains("4 commands", view.View())
}

func TestCatalogViewFailure(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	state := NewState(&fakeBackend{treeErr: errors.New("connection refused")})
	view := NewCatalogView(state, NewStyles())
	view.Update(loadCatalog(state)())

	must_be.Length(0, view.rows)
	must_be.Nil(view.Selected())
	must_be.Contains("press R to retry", view.View())
	must_be.Equal(0, state.Catalog.Len())
}

func TestSessionsViewLifecycle(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})
	view := NewSessionsView(state, NewStyles())
	must_be.Contains("No panels open", view.View())

	var current View = view
	current, cmd := current.Update(openPanelMsg{path: "/root/echo"})
	must_be.Length(0, drain(cmd))
	must_be.Equal(1, state.Sessions.Len())

	current, cmd = current.Update(runes("r"))
	wont_be.Nil(cmd)
	entry := state.Sessions.Entries()[0]
	must_be.Equal(payload.Processing{}, entry.Response)
	must_be.Equal(1, entry.Runs)

	done, ok := findMsg[runFinishedMsg](drain(cmd))
	must_be.True(ok)
	current, _ = current.Update(done)
	must_be.Contains("/root/echo:hello", current.View())

	state.Sessions.SetParam(entry.ID, "msg", "bye")
	current, _ = current.Update(runes("x"))
	entry = state.Sessions.Entries()[0]
	must_be.Nil(entry.Response)
	must_be.Equal("hello", entry.Params.Get("msg"))

	current.Update(runes("d"))
	must_be.Equal(0, state.Sessions.Len())
}

func TestSessionsViewQuickRun(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})
	view := NewSessionsView(state, NewStyles())

	var current View = view
	current, _ = current.Update(runes(":"))
	must_be.True(view.Capturing())
	current = typeInto(current, "/root/echo msg=hi")
	_, cmd := current.Update(tea.KeyMsg{Type: tea.KeyEnter})
	wont_be.True(view.Capturing())

	opened, ok := findMsg[openPanelMsg](drain(cmd))
	must_be.True(ok)
	must_be.True(opened.run)

	_, cmd = current.Update(opened)
	done, ok := findMsg[runFinishedMsg](drain(cmd))
	must_be.True(ok)
	must_be.Equal(payload.Text{Value: "/root/echo:hi"}, done.completion.Response)

	current, _ = current.Update(runes(":"))
	current = typeInto(current, "/root/nowhere")
	_, cmd = current.Update(tea.KeyMsg{Type: tea.KeyEnter})
	opened, _ = findMsg[openPanelMsg](drain(cmd))
	_, cmd = current.Update(opened)
	toast, ok := findMsg[ToastMsg](drain(cmd))
	must_be.True(ok)
	must_be.Equal(ToastError, toast.Type)
	must_be.Equal(1, state.Sessions.Len())
}

func TestSessionsViewFailureBanner(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree(), failing: true})
	view := NewSessionsView(state, NewStyles())
	view.Update(openPanelMsg{path: "/root/echo"})

	_, cmd := view.Update(runes("r"))
	done, ok := findMsg[runFinishedMsg](drain(cmd))
	must_be.True(ok)
	must_be.Equal(payload.Unsuccessful(), done.completion.Response)
	view.Update(done)
	must_be.Contains(payload.UnknownErrorStatus, view.View())
	must_be.Equal(RunFailed, state.History.GetLastRun().Status)
}

func TestParamFormLeavesUntouchedOptionsOut(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := &catalog.CommandNode{Path: "/root/tool", IsCallable: true, Args: []catalog.ArgSpec{
		{Name: "msg", Type: catalog.TypeString},
		{Name: "verbose", Type: catalog.TypeBool},
		{Name: "mode", Type: catalog.TypeString, Choices: []string{"fast", "slow"}},
		{Name: "level", Type: catalog.TypeString, Choices: []string{"low", "high"}, Default: "high"},
	}}
	list := session.NewList(nil)
	id := list.Add(command)
	list.SeedDefaults(id)
	entry, _ := list.FindByID(id)

	form := newParamForm(entry)
	form.focusOn(0)
	form.update(runes("h"))
	form.commit(list)

	entry, _ = list.FindByID(id)
	must_be.Equal(url.Values{"msg": {"h"}, "level": {"high"}}, entry.Params)

	form.focusOn(2)
	form.update(tea.KeyMsg{Type: tea.KeyLeft})
	form.commit(list)
	entry, _ = list.FindByID(id)
	must_be.Equal("slow", entry.Params.Get("mode"))
	_, present := entry.Params["verbose"]
	wont_be.True(present)
}

func TestParamFormFields(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})
	id, err := state.openInto(openPanelMsg{path: "/root/echo"})
	must_be.Nil(err)
	entry, _ := state.Sessions.FindByID(id)

	form := newParamForm(entry)
	must_be.Equal(3, form.Len())
	must_be.True(form.fields[2].inert)
	must_be.Nil(form.fields[2].values())
	must_be.Equal([]string{"hello"}, form.fields[0].values())

	form.focusOn(0)
	must_be.True(form.fields[0].input.Focused())
	form.update(runes("!"))
	must_be.Equal([]string{"hello!"}, form.fields[0].values())

	form.update(tea.KeyMsg{Type: tea.KeyTab})
	must_be.Equal(1, form.focus)
	wont_be.True(form.fields[0].input.Focused())
	must_be.Nil(form.fields[1].values())
	form.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	must_be.Equal([]string{"false"}, form.fields[1].values())
	form.update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	must_be.Equal([]string{"true"}, form.fields[1].values())

	form.update(tea.KeyMsg{Type: tea.KeyTab})
	form.update(runes("z"))
	must_be.Nil(form.fields[2].values())

	form.commit(state.Sessions)
	entry, _ = state.Sessions.FindByID(id)
	must_be.Equal("hello!", entry.Params.Get("msg"))
	must_be.Equal("true", entry.Params.Get("loud"))
	_, present := entry.Params["shape"]
	wont_be.True(present)
}

func sampleCompletion(err error, applied bool) session.Completion {
	return session.Completion{
		ID:       session.ID(7),
		Path:     "/root/echo",
		Response: payload.Text{Value: "hi"},
		Err:      err,
		Started:  time.Now(),
		Elapsed:  common.Duration(15 * time.Millisecond),
		Applied:  applied,
	}
}

func TestRunHistoryRecording(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	history := NewRunHistory(2)
	history.Record(sampleCompletion(nil, true))
	history.Record(sampleCompletion(errors.New("nope"), true))
	history.Record(sampleCompletion(nil, false))

	must_be.Equal(2, history.Len())
	latest := history.GetLatest(5)
	must_be.Length(2, latest)
	must_be.Equal(RunDropped, latest[0].Status)
	must_be.Equal(RunFailed, latest[1].Status)
	must_be.Equal(int64(3), latest[0].ID)
	must_be.Equal("string", latest[0].Result)

	history.Clear()
	must_be.Equal(0, history.Len())
	must_be.Nil(history.GetLastRun())
}

func TestToastStack(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	stack := toasts{}
	for _, text := range []string{"one", "two", "three", "four"} {
		wont_be.Nil(stack.push(ToastMsg{Type: ToastInfo, Message: text}))
	}
	must_be.Equal(maxToasts, stack.Len())
	must_be.Equal("two", stack.active[0].Message)

	stack.expire(stack.active[0].ID)
	must_be.Equal(2, stack.Len())
	must_be.Contains("four", stack.render(NewStyles()))
}

func TestOverlayRight(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal("abc XY\ndef", overlayRight("abc\ndef", "XY", 6))
	must_be.Equal("abcXY", overlayRight("abcdef", "XY", 5))
	must_be.Equal("ab\n  XY", overlayRight("ab", "\nXY", 4))
	must_be.Equal("ab\ncd\n  XY", overlayRight("ab\ncd", "\n\nXY", 4))
}

func TestAppSwitchesViews(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	state := loadedState(t, &fakeBackend{tree: sampleTree()})
	app := NewApp(state, NewStyles())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(runes("3"))
	must_be.Equal(ViewPlugins, app.activeView)
	app.Update(runes("?"))
	must_be.True(app.showHelp)
	app.Update(runes("2"))
	must_be.Equal(ViewSessions, app.activeView)
	must_be.True(!app.showHelp)

	app.Update(runes(":"))
	app.Update(runes("1"))
	must_be.Equal(ViewSessions, app.activeView)
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(runes("1"))
	must_be.Equal(ViewCatalog, app.activeView)

	app.Update(openPanelMsg{path: "/root/echo"})
	must_be.Equal(ViewSessions, app.activeView)
	must_be.Equal(1, state.Sessions.Len())

	screen := app.View()
	must_be.Contains("SAK", screen)
	must_be.Contains("<panels>", screen)
}

func TestAppReactsToLoading(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	state := NewState(&fakeBackend{treeErr: errors.New("down")})
	app := NewApp(state, NewStyles())

	_, cmd := app.Update(loadCatalog(state)())
	toast, ok := findMsg[ToastMsg](drain(cmd))
	must_be.True(ok)
	must_be.Equal(ToastError, toast.Type)

	app.Update(toast)
	must_be.Equal(1, app.toasts.Len())

	app.Update(pluginsLoadedMsg{plugins: []backend.Plugin{{Name: "demo"}}})
	must_be.True(state.PluginsLoaded)
	must_be.Length(1, state.Plugins)
}

func TestRunToastReportsFailureEnvelopes(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	app := NewApp(NewState(&fakeBackend{tree: sampleTree()}), NewStyles())
	toastOf := func(completion session.Completion) ToastMsg {
		toast, ok := findMsg[ToastMsg](drain(app.runToast(runFinishedMsg{completion: completion})))
		must_be.True(ok)
		return toast
	}

	must_be.Equal(ToastError, toastOf(session.Completion{ID: 1, Applied: true, Response: payload.Failure{Status: "boom"}}).Type)
	must_be.Equal(ToastError, toastOf(session.Completion{ID: 1, Applied: true, Err: errors.New("down")}).Type)
	must_be.Equal(ToastSuccess, toastOf(session.Completion{ID: 1, Applied: true, Response: payload.Text{Value: "ok"}}).Type)
	wont_be.Nil(app.runToast(runFinishedMsg{completion: session.Completion{Applied: true}}))
	must_be.Nil(app.runToast(runFinishedMsg{completion: session.Completion{Applied: false}}))
}
