package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/payload"
)

const (
	CommandTreeRoute = `/api/cmd/sak`
	PluginsRoute     = `/api/show/plugins`
)

var (
	ErrStatus = errors.New("unexpected HTTP status")
)

type Plugin struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// API is the sak backend as the dashboard sees it: a command tree, a list
// of plugins and the commands themselves.
type API struct {
	client Client
}

func NewAPI(client Client) *API {
	return &API{client: client}
}

func (it *API) Endpoint() string {
	return it.client.Endpoint()
}

func (it *API) fetch(ctx context.Context, route string) ([]byte, error) {
	response := it.client.Get(ctx, it.client.NewRequest(route))
	if response.Err != nil {
		return nil, fmt.Errorf("GET %s: %w", route, response.Err)
	}
	if !response.Success() {
		return nil, fmt.Errorf("GET %s: %w %d", route, ErrStatus, response.Status)
	}
	return response.Body, nil
}

func (it *API) CommandTree(ctx context.Context) (*catalog.CommandNode, error) {
	body, err := it.fetch(ctx, CommandTreeRoute)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(body)
}

func (it *API) Plugins(ctx context.Context) ([]Plugin, error) {
	body, err := it.fetch(ctx, PluginsRoute)
	if err != nil {
		return nil, err
	}
	plugins := []Plugin{}
	err = json.Unmarshal(body, &plugins)
	if err != nil {
		return nil, fmt.Errorf("plugins: %w", err)
	}
	return plugins, nil
}

// Invoke runs the command at path with params as its query string.
func (it *API) Invoke(ctx context.Context, path string, params url.Values) (payload.Response, error) {
	route := CommandRoute(path, params)
	body, err := it.fetch(ctx, route)
	if err != nil {
		return nil, err
	}
	response, err := payload.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", route, err)
	}
	common.Trace("GET %s answered %T", route, response)
	return response, nil
}

// Reachable does one HEAD request against the command tree route.
func (it *API) Reachable(ctx context.Context) (int, common.Duration, error) {
	response := it.client.Uncritical().Head(ctx, it.client.NewRequest(CommandTreeRoute))
	return response.Status, response.Elapsed, response.Err
}

// CommandRoute joins the command path and the encoded params.
func CommandRoute(path string, params url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	query := params.Encode()
	if len(query) == 0 {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + query
	}
	return path + "?" + query
}
