package ratelimit

import (
	"strings"
)

// unlimited is returned for paths that are never throttled.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when only the
// default limit applies. Exact matches win over prefix matches; a config
// whose Path ends in "/" matches every path below it.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		cfg := unlimited
		return &cfg
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			return cfg
		}
	}

	return nil
}
