// Package backend talks HTTP to the sak command server.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/settings"
)

const (
	statusBadRequest = 9001
	statusNoResponse = 9002
)

type internalClient struct {
	endpoint string
	client   *http.Client
	tracing  bool
	critical bool
}

type Request struct {
	Url     string
	Headers map[string]string
}

type Response struct {
	Status  int
	Err     error
	Body    []byte
	Elapsed common.Duration
}

// Success is true for a completed exchange with a 2xx status.
func (it *Response) Success() bool {
	return it.Err == nil && it.Status >= 200 && it.Status < 300
}

type Client interface {
	Endpoint() string
	NewRequest(string) *Request
	Head(ctx context.Context, request *Request) *Response
	Get(ctx context.Context, request *Request) *Response
	WithTimeout(time.Duration) Client
	WithTracing() Client
	Uncritical() Client
}

// NormalizeEndpoint checks that endpoint is an absolute http(s) address and
// strips trailing slashes.
func NormalizeEndpoint(endpoint string) (string, error) {
	nice := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(nice)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("Endpoint '%s' must start with http:// or https:// prefix.", nice)
	}
	if len(parsed.Host) == 0 {
		return "", fmt.Errorf("Endpoint '%s' has no host.", nice)
	}
	return nice, nil
}

func NewClient(endpoint string) (Client, error) {
	nice, err := NormalizeEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &internalClient{
		endpoint: nice,
		client:   &http.Client{Transport: settings.Global.ConfiguredHttpTransport()},
		tracing:  false,
		critical: true,
	}, nil
}

func (it *internalClient) Uncritical() Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   it.client,
		tracing:  it.tracing,
		critical: false,
	}
}

func (it *internalClient) WithTimeout(timeout time.Duration) Client {
	return &internalClient{
		endpoint: it.endpoint,
		client: &http.Client{
			Transport: it.client.Transport,
			Timeout:   timeout,
		},
		tracing:  it.tracing,
		critical: it.critical,
	}
}

func (it *internalClient) WithTracing() Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   it.client,
		tracing:  true,
		critical: it.critical,
	}
}

func (it *internalClient) Endpoint() string {
	return it.endpoint
}

func (it *internalClient) does(ctx context.Context, method string, request *Request) *Response {
	stopwatch := common.Stopwatch("stopwatch")
	response := new(Response)
	url := it.Endpoint() + request.Url
	common.Trace("Doing %s %s", method, url)
	defer func() {
		response.Elapsed = stopwatch.Elapsed()
		common.Trace("%s %s took %s", method, url, response.Elapsed)
	}()
	httpRequest, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		response.Status = statusBadRequest
		response.Err = err
		return response
	}
	httpRequest.Header.Add("User-Agent", common.UserAgent())
	httpRequest.Header.Add("Accept", "application/json")
	for name, value := range settings.Global.Headers() {
		httpRequest.Header.Add(name, value)
	}
	for name, value := range request.Headers {
		httpRequest.Header.Set(name, value)
	}
	httpResponse, err := it.client.Do(httpRequest)
	if err != nil {
		if it.critical {
			common.Error("http.Do", err)
		} else {
			common.Uncritical("http.Do", err)
		}
		response.Status = statusNoResponse
		response.Err = err
		return response
	}
	defer httpResponse.Body.Close()
	if it.tracing {
		common.Trace("Response %d headers:", httpResponse.StatusCode)
		keys := make([]string, 0, len(httpResponse.Header))
		for key := range httpResponse.Header {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			common.Trace("> %s: %q", key, httpResponse.Header[key])
		}
	}
	response.Status = httpResponse.StatusCode
	response.Body, response.Err = io.ReadAll(httpResponse.Body)
	if common.DebugFlag() {
		body := "ignore"
		if response.Status > 399 {
			body = string(response.Body)
		}
		common.Debug("%v %v %v => %v (%v)", <-common.Identities, method, url, response.Status, body)
	}
	return response
}

func (it *internalClient) NewRequest(url string) *Request {
	return &Request{
		Url:     url,
		Headers: make(map[string]string),
	}
}

func (it *internalClient) Head(ctx context.Context, request *Request) *Response {
	return it.does(ctx, http.MethodHead, request)
}

func (it *internalClient) Get(ctx context.Context, request *Request) *Response {
	return it.does(ctx, http.MethodGet, request)
}
