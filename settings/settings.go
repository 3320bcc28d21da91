// Package settings gives typed access to the sakdash configuration keys.
package settings

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/xviper"
)

const (
	EndpointKey  = `endpoint`
	TimeoutKey   = `timeout`
	PluginsKey   = `plugins`
	ThemeKey     = `theme`
	IdentityHead = `X-Sak-Client`

	DefaultEndpoint = `http://127.0.0.1:5000`
)

var (
	Global gateway
)

type gateway bool

func init() {
	Defaults()
}

// Defaults registers the default value of every known key.
func Defaults() {
	xviper.SetDefault(EndpointKey, DefaultEndpoint)
	xviper.SetDefault(TimeoutKey, "0s")
	xviper.SetDefault(PluginsKey, true)
	xviper.SetDefault(ThemeKey, "default")
}

// Endpoint returns the backend base address without a trailing slash.
func (it gateway) Endpoint() string {
	endpoint := strings.TrimSpace(xviper.GetString(EndpointKey))
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}
	return strings.TrimRight(endpoint, "/")
}

// Timeout is zero when no explicit limit is configured.
func (it gateway) Timeout() time.Duration {
	timeout := xviper.GetDuration(TimeoutKey)
	if timeout < 0 {
		return 0
	}
	return timeout
}

func (it gateway) PluginsEnabled() bool {
	return xviper.GetBool(PluginsKey)
}

func (it gateway) Theme() string {
	return xviper.GetString(ThemeKey)
}

func (it gateway) Identity() string {
	return xviper.ClientIdentity()
}

func (it gateway) Headers() map[string]string {
	return map[string]string{
		IdentityHead: it.Identity(),
	}
}

// ConfiguredHttpTransport honours HTTP_PROXY, HTTPS_PROXY and NO_PROXY.
func (it gateway) ConfiguredHttpTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return transport
}

// Hostname returns the host part of the configured endpoint.
func (it gateway) Hostname() string {
	parsed, err := url.Parse(it.Endpoint())
	if err != nil {
		common.Debug("Endpoint %q does not parse: %v", it.Endpoint(), err)
		return ""
	}
	return parsed.Hostname()
}

// Diagnostics is a flat key/value view of the effective configuration.
func (it gateway) Diagnostics() map[string]string {
	return map[string]string{
		"endpoint": it.Endpoint(),
		"timeout":  it.Timeout().String(),
		"plugins":  boolText(it.PluginsEnabled()),
		"config":   xviper.ConfigFile(),
		"identity": it.Identity(),
	}
}

func boolText(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
