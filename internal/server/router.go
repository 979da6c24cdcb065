package server

import (
	"strings"

	"github.com/myume/agora/internal/config"
)

// ErrNoRoute is returned when no configured prefix matches the request
// path. Mapped to 404 by the supervisor.
var ErrNoRoute = errNoRoute{}

type errNoRoute struct{}

func (errNoRoute) Error() string { return "no route matches path" }

// Route scans cfg.Routes in order and returns the first entry whose
// prefix prefixes path, plus the (possibly prefix-stripped) forwarding
// path. Order is significant and is the caller's responsibility to
// establish (config.Load preserves JSON key order for exactly this
// reason).
func Route(cfg *config.ServerConfig, path string) (config.ProxyEntry, string, error) {
	for _, route := range cfg.Routes {
		if strings.HasPrefix(path, route.Prefix) {
			forwardPath := path
			if route.Entry.StripPrefix {
				forwardPath = strings.TrimPrefix(path, route.Prefix)
				if !strings.HasPrefix(forwardPath, "/") {
					forwardPath = "/" + forwardPath
				}
			}
			return route.Entry, forwardPath, nil
		}
	}
	return config.ProxyEntry{}, "", ErrNoRoute
}
