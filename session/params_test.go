package session_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/session"
)

func TestFormValues(t *testing.T) {
	list := catalog.ArgSpec{Name: "items", Type: catalog.TypeList}
	text := catalog.ArgSpec{Name: "msg", Type: catalog.TypeString}
	odd := catalog.ArgSpec{Name: "when", Type: "weekday"}

	tests := []struct {
		name     string
		arg      catalog.ArgSpec
		input    string
		expected []string
	}{
		{"list with commas", list, "a, b,c", []string{"a", "b", "c"}},
		{"list with newlines", list, "a\nb\n\n c ", []string{"a", "b", "c"}},
		{"empty list", list, " , ", []string{}},
		{"string as typed", text, " a, b ", []string{" a, b "}},
		{"empty string", text, "", nil},
		{"unsupported as typed", odd, "monday", []string{"monday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			must_be, _ := hamlet.Specifications(t)
			must_be.Equal(tt.expected, session.FormValues(tt.arg, tt.input))
		})
	}
}

func TestFormTextRoundTripsLists(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	list := catalog.ArgSpec{Name: "items", Type: catalog.TypeList}
	must_be.Equal("a, b", session.FormText(list, []string{"a", "b"}))
	must_be.Equal([]string{"a", "b"}, session.FormValues(list, session.FormText(list, []string{"a", "b"})))
	must_be.Equal("x", session.FormText(catalog.ArgSpec{Type: "int"}, []string{"x", "y"}))
	must_be.Equal("", session.FormText(catalog.ArgSpec{Type: "int"}, nil))
}

func TestDefaults(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	command := &catalog.CommandNode{Args: []catalog.ArgSpec{
		{Name: "msg", Type: "string", Default: "hello"},
		{Name: "count", Type: "int", Default: float64(2)},
		{Name: "items", Type: "list", Default: []interface{}{"a", "b"}},
		{Name: "none", Type: "string"},
	}}
	must_be.Equal(url.Values{
		"msg":   {"hello"},
		"count": {"2"},
		"items": {"a", "b"},
	}, session.Defaults(command))
	must_be.Equal(url.Values{}, session.Defaults(nil))
}

func TestParseCommandLine(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	path, assignments, err := session.ParseCommandLine(`/root/echo msg="hi there" n=1 n=2 empty=`)
	must_be.Nil(err)
	must_be.Equal("/root/echo", path)
	must_be.Equal([]session.Assignment{
		{Name: "msg", Value: "hi there"},
		{Name: "n", Value: "1"},
		{Name: "n", Value: "2"},
		{Name: "empty", Value: ""},
	}, assignments)

	_, _, err = session.ParseCommandLine("   ")
	wont_be.Nil(err)
	_, _, err = session.ParseCommandLine(`/root/echo "unterminated`)
	wont_be.Nil(err)
	_, _, err = session.ParseCommandLine(`/root/echo novalue`)
	wont_be.Nil(err)
	_, err = session.ParseAssignments([]string{"=x"})
	wont_be.Nil(err)
}

func TestApplyUsesArgumentKinds(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := &catalog.CommandNode{Path: "/root/sum", Args: []catalog.ArgSpec{
		{Name: "values", Type: "list"},
		{Name: "label", Type: "string"},
	}}
	sut := session.NewList(echoing())
	id := sut.Add(command)
	err := sut.Apply(id, []session.Assignment{
		{Name: "values", Value: "1,2"},
		{Name: "values", Value: "3"},
		{Name: "label", Value: "a,b"},
		{Name: "extra", Value: "free"},
	})
	must_be.Nil(err)
	entry, _ := sut.FindByID(id)
	must_be.Equal(url.Values{
		"values": {"1", "2", "3"},
		"label":  {"a,b"},
		"extra":  {"free"},
	}, entry.Params)

	wont_be.Nil(sut.Apply(session.ID(77), nil))
	completion, ok := sut.Run(context.Background(), id)
	must_be.True(ok)
	must_be.True(completion.Applied)
}

func TestSeedDefaultsFillsParams(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	command := &catalog.CommandNode{Path: "/root/echo", IsCallable: true, Args: []catalog.ArgSpec{
		{Name: "msg", Type: "string", Default: "hello"},
		{Name: "loud", Type: "bool"},
	}}
	list := session.NewList(nil)
	id := list.Add(command)
	must_be.True(list.SeedDefaults(id))

	entry, ok := list.FindByID(id)
	must_be.True(ok)
	must_be.Equal(url.Values{"msg": {"hello"}}, entry.Params)
	wont_be.True(list.SeedDefaults(id + 100))
}

type fixedTree struct {
	root *catalog.CommandNode
}

func (it fixedTree) CommandTree(ctx context.Context) (*catalog.CommandNode, error) {
	return it.root, nil
}

func TestOpenChecksPathAndSeedsDefaults(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	root := &catalog.CommandNode{Path: "/root", SubCmds: []*catalog.CommandNode{
		{Path: "/root/echo", IsCallable: true, Args: []catalog.ArgSpec{{Name: "msg", Type: "string", Default: "hello"}}},
		{Path: "/root/group"},
	}}
	index := catalog.NewIndex()
	must_be.Nil(index.Load(context.Background(), fixedTree{root}))
	list := session.NewList(nil)

	id, err := list.Open(index, "/root/echo", nil)
	must_be.Nil(err)
	entry, ok := list.FindByID(id)
	must_be.True(ok)
	must_be.Equal(url.Values{"msg": {"hello"}}, entry.Params)

	id, err = list.Open(index, "/root/echo", []session.Assignment{{Name: "msg", Value: "bye"}})
	must_be.Nil(err)
	entry, _ = list.FindByID(id)
	must_be.Equal([]string{"bye"}, entry.Params["msg"])

	_, err = list.Open(index, "/root/missing", nil)
	wont_be.Nil(err)
	_, err = list.Open(index, "/root/group", nil)
	wont_be.Nil(err)
	must_be.Equal(2, list.Len())
}
