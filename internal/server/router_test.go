package server

import (
	"testing"

	"github.com/myume/agora/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Routes: []config.RouteEntry{
			{Prefix: "/api", Entry: config.ProxyEntry{Addr: "127.0.0.1:3000", StripPrefix: true}},
			{Prefix: "/", Entry: config.ProxyEntry{Addr: "127.0.0.1:4000", StripPrefix: false}},
		},
	}
}

func TestRoutePrefersEarlierMoreSpecificEntry(t *testing.T) {
	entry, path, err := Route(testConfig(), "/api/widgets")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", entry.Addr)
	assert.Equal(t, "/widgets", path)
}

func TestRouteFallsBackToCatchAll(t *testing.T) {
	entry, path, err := Route(testConfig(), "/anything")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", entry.Addr)
	assert.Equal(t, "/anything", path)
}

func TestRouteNoMatch(t *testing.T) {
	cfg := &config.ServerConfig{Routes: []config.RouteEntry{
		{Prefix: "/only", Entry: config.ProxyEntry{Addr: "127.0.0.1:3000"}},
	}}
	_, _, err := Route(cfg, "/elsewhere")
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestRouteStripPrefixPrependsSlashWhenBare(t *testing.T) {
	cfg := &config.ServerConfig{Routes: []config.RouteEntry{
		{Prefix: "/api", Entry: config.ProxyEntry{Addr: "127.0.0.1:3000", StripPrefix: true}},
	}}
	_, path, err := Route(cfg, "/api")
	require.NoError(t, err)
	assert.Equal(t, "/", path)
}
