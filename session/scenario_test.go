package session_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/session"
)

const scenarioTree = `{"path": "/root", "name": "root", "helpmsg": "", "isCallable": false, "args": [], "subcmds": [
  {"path": "/root/echo", "name": "echo", "helpmsg": "", "isCallable": true,
   "args": [{"name": "msg", "type": "string", "choices": []}], "subcmds": []},
  {"path": "/root/fail", "name": "fail", "helpmsg": "", "isCallable": true, "args": [], "subcmds": []},
  {"path": "/root/sum", "name": "sum", "helpmsg": "", "isCallable": true,
   "args": [{"name": "values", "type": "list"}], "subcmds": []}]}`

func scenarioServer(t *testing.T) *backend.API {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cmd/sak", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scenarioTree)
	})
	mux.HandleFunc("/root/echo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "string", "result": %q}`, r.URL.Query().Get("msg"))
	})
	mux.HandleFunc("/root/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/root/sum", func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()["values"]
		fmt.Fprintf(w, `{"type": "pd.DataFrame", "result": {"columns": ["values"], "index": [0], "data": [[%q]]}}`, strings.Join(values, "+"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client, err := backend.NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	return backend.NewAPI(client)
}

func TestEchoScenarioEndToEnd(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	api := scenarioServer(t)
	index := catalog.NewIndex()
	must_be.Nil(index.Load(context.Background(), api))

	command, ok := index.Lookup("/root/echo")
	must_be.True(ok)
	sessions := session.NewList(api)
	id := sessions.Add(command)
	sessions.SetParam(id, "msg", "hi")

	call, ok := sessions.RunByID(context.Background(), id)
	must_be.True(ok)
	entry, _ := sessions.FindByID(id)
	must_be.Equal(payload.Processing{}, entry.Response)

	completion := call()
	must_be.True(completion.Applied)
	entry, _ = sessions.FindByID(id)
	must_be.Equal(payload.Text{Value: "hi"}, entry.Response)
	must_be.Same(command, entry.Cmd)

	failing, _ := index.Lookup("/root/fail")
	broken := sessions.Add(failing)
	completion, _ = sessions.Run(context.Background(), broken)
	wont_be.Nil(completion.Err)
	entry, _ = sessions.FindByID(broken)
	must_be.Equal(payload.Unsuccessful(), entry.Response)
}

func TestListArgumentsTravelAsRepeatedValues(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	api := scenarioServer(t)
	index := catalog.NewIndex()
	must_be.Nil(index.Load(context.Background(), api))
	command, _ := index.Lookup("/root/sum")

	sessions := session.NewList(api)
	id := sessions.Add(command)
	must_be.Nil(sessions.Apply(id, []session.Assignment{{Name: "values", Value: "1, 2,3"}}))
	completion, _ := sessions.Run(context.Background(), id)
	table, ok := completion.Response.(payload.Table)
	must_be.True(ok)
	must_be.Equal("1+2+3", table.Cell(0, 0))
}
