package cmd

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/session"
	"github.com/joshyorko/sakdash/settings"
	"github.com/mitchellh/go-ps"
)

type staticTree struct {
	root *catalog.CommandNode
}

func (it staticTree) CommandTree(ctx context.Context) (*catalog.CommandNode, error) {
	return it.root, nil
}

type echoInvoker struct{}

func (echoInvoker) Invoke(ctx context.Context, path string, params url.Values) (payload.Response, error) {
	if path == "/root/broken" {
		return nil, errors.New("boom")
	}
	return payload.Text{Value: path + ":" + strings.Join(params["msg"], "+")}, nil
}

func sampleRoot() *catalog.CommandNode {
	return &catalog.CommandNode{
		Path: "/root", Name: "root",
		SubCmds: []*catalog.CommandNode{
			{
				Path: "/root/echo", Name: "echo", HelpMsg: "say it back\nmore text", IsCallable: true,
				Args: []catalog.ArgSpec{
					{Name: "msg", Type: "string", Default: "hello"},
					{Name: "color", Type: "string", Choices: catalog.Choices{"red", "blue"}},
					{Name: "shape", Type: "polygon"},
				},
			},
			{Path: "/root/broken", Name: "broken", IsCallable: true},
			{
				Path: "/root/group", Name: "group",
				SubCmds: []*catalog.CommandNode{
					{Path: "/root/group/leaf", Name: "leaf", IsCallable: true},
				},
			},
		},
	}
}

func sampleIndex(t *testing.T) *catalog.Index {
	index := catalog.NewIndex()
	if err := index.Load(context.Background(), staticTree{sampleRoot()}); err != nil {
		t.Fatalf("loading sample tree: %v", err)
	}
	return index
}

func TestCommandWordsJoinsArgsLine(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	words, err := commandWords([]string{"a=1"}, `msg="hi there" loud=true`)
	must_be.Nil(err)
	must_be.Equal([]string{"a=1", "msg=hi there", "loud=true"}, words)

	words, err = commandWords(nil, "   ")
	must_be.Nil(err)
	must_be.Length(0, words)

	_, err = commandWords(nil, `msg="open`)
	wont_be.Nil(err)
}

func TestEncodeTreeFormats(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	content, err := encodeTree(sampleRoot(), formatJson)
	must_be.Nil(err)
	must_be.Contains(`"path": "/root/echo"`, string(content))

	content, err = encodeTree(sampleRoot(), formatYaml)
	must_be.Nil(err)
	must_be.Contains("path: /root/echo", string(content))
	must_be.Contains("callable: true", string(content))

	content, err = encodeTree(sampleRoot(), formatText)
	must_be.Nil(err)
	must_be.Contains("  - echo  /root/echo  # say it back\n", string(content))
	must_be.Contains("  + group\n", string(content))

	_, err = encodeTree(sampleRoot(), "xml")
	wont_be.Nil(err)
}

func TestTreeListingOfCallablePaths(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	must_be.Equal("/root/echo\n/root/broken\n/root/group/leaf\n", treeListing(sampleRoot(), true))
}

func TestArgumentListing(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	listing := argumentListing(sampleRoot().SubCmds[0])
	must_be.Contains("path:     /root/echo\n", listing)
	must_be.Contains("  msg: string = hello\n", listing)
	must_be.Contains("  color: string [red|blue]\n", listing)
	must_be.Contains("  shape: polygon (unsupported)\n", listing)
}

func TestOpenedPanelsCarryDefaultsAndAssignments(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	index := sampleIndex(t)
	list := session.NewList(echoInvoker{})

	first, err := list.Open(index, "/root/echo", nil)
	must_be.Nil(err)
	second, err := list.Open(index, "/root/echo", []session.Assignment{{Name: "msg", Value: "a"}, {Name: "msg", Value: "b"}})
	must_be.Nil(err)

	entry, ok := list.FindByID(first)
	must_be.True(ok)
	must_be.Equal([]string{"hello"}, entry.Params["msg"])
	entry, ok = list.FindByID(second)
	must_be.True(ok)
	must_be.Equal([]string{"a", "b"}, entry.Params["msg"])

	_, err = list.Open(index, "/root/missing", nil)
	wont_be.Nil(err)
	_, err = list.Open(index, "/root/group", nil)
	wont_be.Nil(err)
	must_be.Equal(2, list.Len())
}

func TestRunPanelsKeepsPanelOrder(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	index := sampleIndex(t)
	list := session.NewList(echoInvoker{})
	ids := []session.ID{}
	for _, path := range []string{"/root/echo", "/root/broken", "/root/group/leaf"} {
		id, err := list.Open(index, path, nil)
		must_be.Nil(err)
		ids = append(ids, id)
	}

	completions, err := runPanels(list, ids)
	must_be.Nil(err)
	must_be.Length(3, completions)
	must_be.Equal(payload.Text{Value: "/root/echo:hello"}, completions[0].Response)
	must_be.Equal(payload.Unsuccessful(), completions[1].Response)
	must_be.Equal(payload.Text{Value: "/root/group/leaf:"}, completions[2].Response)

	wont_be.True(failed(completions[0]))
	must_be.True(failed(completions[1]))
}

func TestSettingValues(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	value, err := settingValue(settings.EndpointKey, " http://example.com:5000/ ")
	must_be.Nil(err)
	must_be.Equal("http://example.com:5000", value)

	value, err = settingValue(settings.TimeoutKey, "1m30s")
	must_be.Nil(err)
	must_be.Equal("1m30s", value)

	value, err = settingValue(settings.PluginsKey, "false")
	must_be.Nil(err)
	must_be.Equal(false, value)

	_, err = settingValue(settings.TimeoutKey, "-3s")
	wont_be.Nil(err)
	_, err = settingValue(settings.EndpointKey, "ftp://example.com")
	wont_be.Nil(err)
	_, err = settingValue("colour", "red")
	wont_be.Nil(err)
}

type fakeProcess struct {
	pid  int
	name string
}

func (it fakeProcess) Pid() int           { return it.pid }
func (it fakeProcess) PPid() int          { return 1 }
func (it fakeProcess) Executable() string { return it.name }

func TestLocalBackendsSkipsSelfAndDashboards(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	processes := []ps.Process{
		fakeProcess{10, "sak"},
		fakeProcess{11, "sakdash"},
		fakeProcess{12, "bash"},
		fakeProcess{13, "sak"},
	}
	must_be.Equal([]string{"sak (pid 10)"}, localBackends(processes, 13))
}

func TestChecksCountFailures(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	result := checks{
		{"backend", statusFail, "connection refused"},
		{"catalog", statusOk, "4 commands"},
		{"plugins", statusWarn, "HTTP 404"},
	}
	must_be.Equal(1, result.failures())
	table := result.render(true)
	must_be.Contains("connection refused", table)
	must_be.Contains("plugins", table)
}
