package util

import (
	"net/http"
	"net/url"

	"github.com/fundscout/fundscout/internal/model"
)

// ProxyFunc returns the transport proxy selector for the run configuration.
// Explicit proxy URLs win over the HTTP_PROXY/HTTPS_PROXY environment; with
// neither configured the environment applies as usual.
func ProxyFunc(cfg model.HTTPConfig) func(*http.Request) (*url.URL, error) {
	if cfg.HTTPProxy == "" && cfg.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && cfg.HTTPSProxy != "" {
			return url.Parse(cfg.HTTPSProxy)
		}
		if cfg.HTTPProxy != "" {
			return url.Parse(cfg.HTTPProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
