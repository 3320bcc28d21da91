package backend_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/settings"
)

const echoTree = `{"path": "/root", "name": "root", "helpmsg": "", "isCallable": false, "args": [], "subcmds": [
  {"path": "/root/echo", "name": "echo", "helpmsg": "", "isCallable": true,
   "args": [{"name": "msg", "type": "string", "choices": []}], "subcmds": []}]}`

func newServer(t *testing.T) (*backend.API, chan http.Header) {
	t.Helper()
	seen := make(chan http.Header, 8)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cmd/sak", func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
		fmt.Fprint(w, echoTree)
	})
	mux.HandleFunc("/api/show/plugins", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "sak_echo", "path": "/root/echo"}]`)
	})
	mux.HandleFunc("/root/echo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "string", "result": %q}`, r.URL.Query().Get("msg"))
	})
	mux.HandleFunc("/root/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "kaboom", http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client, err := backend.NewClient(server.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	return backend.NewAPI(client), seen
}

func TestCommandTreeAndHeaders(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	api, seen := newServer(t)
	root, err := api.CommandTree(context.Background())
	must_be.Nil(err)
	must_be.Equal("/root", root.Path)
	must_be.Equal(1, len(root.SubCmds))
	must_be.True(root.SubCmds[0].IsCallable)

	headers := <-seen
	wont_be.Equal("", headers.Get(settings.IdentityHead))
	must_be.Contains("sakdash/", headers.Get("User-Agent"))
}

func TestPlugins(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	api, _ := newServer(t)
	plugins, err := api.Plugins(context.Background())
	must_be.Nil(err)
	must_be.Equal([]backend.Plugin{{Name: "sak_echo", Path: "/root/echo"}}, plugins)
}

func TestInvokeSendsParamsAsQuery(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	api, _ := newServer(t)
	response, err := api.Invoke(context.Background(), "/root/echo", url.Values{"msg": {"hi there"}})
	must_be.Nil(err)
	must_be.Equal(payload.Text{Value: "hi there"}, response)
}

func TestInvokeFailures(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	api, _ := newServer(t)
	_, err := api.Invoke(context.Background(), "/root/broken", nil)
	must_be.True(errors.Is(err, backend.ErrStatus))

	_, err = api.Invoke(context.Background(), "/root/missing", nil)
	wont_be.Nil(err)

	client, _ := backend.NewClient("http://127.0.0.1:1")
	_, err = backend.NewAPI(client.Uncritical()).Invoke(context.Background(), "/root/echo", nil)
	wont_be.Nil(err)
}

func TestReachable(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	api, _ := newServer(t)
	status, _, err := api.Reachable(context.Background())
	must_be.Nil(err)
	must_be.Equal(http.StatusOK, status)
}

func TestCommandRoute(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		params   url.Values
		expected string
	}{
		{"no params", "/root/echo", nil, "/root/echo"},
		{"empty params", "/root/echo", url.Values{}, "/root/echo"},
		{"one param", "/root/echo", url.Values{"msg": {"hi"}}, "/root/echo?msg=hi"},
		{"repeated values", "/root/sum", url.Values{"v": {"1", "2"}}, "/root/sum?v=1&v=2"},
		{"missing slash", "root/echo", url.Values{"msg": {"a b"}}, "/root/echo?msg=a+b"},
		{"existing query", "/root/echo?x=1", url.Values{"msg": {"hi"}}, "/root/echo?x=1&msg=hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backend.CommandRoute(tt.path, tt.params); got != tt.expected {
				t.Errorf("CommandRoute() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		expected string
		fails    bool
	}{
		{"http://127.0.0.1:5000/", "http://127.0.0.1:5000", false},
		{" https://sak.example ", "https://sak.example", false},
		{"ftp://sak.example", "", true},
		{"127.0.0.1:5000", "", true},
		{"http://", "", true},
	}
	for _, tt := range tests {
		got, err := backend.NormalizeEndpoint(tt.endpoint)
		if tt.fails != (err != nil) {
			t.Errorf("NormalizeEndpoint(%q) error = %v", tt.endpoint, err)
		}
		if got != tt.expected {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tt.endpoint, got, tt.expected)
		}
	}
}
