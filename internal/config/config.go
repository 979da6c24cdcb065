// Package config loads the proxy's route table from a JSON configuration
// file: an object mapping path prefixes to backend entries. Object key
// order in the source document is significant (§4.7's "order matters and
// is part of the contract"), which plain encoding/json unmarshal into a Go
// map would silently discard, so the decode below walks tokens manually.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ProxyEntry is a single route's backend: where to dial, and whether the
// matched prefix should be stripped from the forwarded path.
type ProxyEntry struct {
	Addr        string `json:"addr"`
	StripPrefix bool   `json:"strip_prefix"`
}

// RouteEntry pairs a path prefix with its backend, preserving the position
// it held in the configuration file.
type RouteEntry struct {
	Prefix string
	Entry  ProxyEntry
}

// ServerConfig is the immutable, post-load configuration shared by every
// connection task. Routes is scanned in order by the router (§4.7); it is
// never mutated after Load returns.
type ServerConfig struct {
	Routes []RouteEntry
}

// Load reads and parses a route table from r. A nil/empty document (or a
// nil r) yields an empty ServerConfig, per §6: "no config -> default
// (empty route table, which causes all requests to return 404)".
func Load(r io.Reader) (*ServerConfig, error) {
	if r == nil {
		return &ServerConfig{}, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &ServerConfig{}, nil
	}

	routes, err := decodeOrdered(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	return &ServerConfig{Routes: routes}, nil
}

// decodeOrdered walks the top-level JSON object's tokens by hand so that
// key order survives, then unmarshals each value normally: Go's
// encoding/json gives no ordered-map primitive, and nothing in the
// reference stack either, so this is the one place config intentionally
// stays on the standard library (see DESIGN.md).
func decodeOrdered(data []byte) ([]RouteEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "reading opening token")
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, errors.New("config root must be a JSON object")
	}

	var routes []RouteEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "reading route prefix")
		}
		prefix, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("route prefix must be a string")
		}

		var entry ProxyEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, errors.Wrapf(err, "decoding entry for prefix %q", prefix)
		}
		if entry.Addr == "" {
			return nil, errors.Errorf("prefix %q: addr must not be empty", prefix)
		}
		if !strings.HasPrefix(prefix, "/") {
			return nil, errors.Errorf("prefix %q must start with /", prefix)
		}

		routes = append(routes, RouteEntry{Prefix: prefix, Entry: entry})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "reading closing token")
	}

	return routes, nil
}
