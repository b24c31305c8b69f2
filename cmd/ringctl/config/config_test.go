package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := Config{}
	require.EqualError(t, cfg.Validate(), "servers must be set")

	cfg = Config{Servers: []string{"10.0.0.1:11211", "  "}}
	require.EqualError(t, cfg.Validate(), "servers[1] must not be empty")

	cfg = Config{Servers: []string{"10.0.0.1:11211"}, WatchInterval: "sometimes"}
	require.EqualError(t, cfg.Validate(), `watch-interval "sometimes" is not a valid duration`)

	cfg = Config{Servers: []string{"10.0.0.1:11211"}, WatchInterval: "30s"}
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig
	cfg.Servers = []string{"10.0.0.1:11211"}
	require.NoError(t, cfg.Validate())
}

func TestUnmarshal(t *testing.T) {
	raw := `
self-hostport = "10.0.0.1:11211"
servers = ["10.0.0.1:11211", "10.0.0.2:11211-g0"]
watch-interval = "5s"
`
	var cfg Config
	require.NoError(t, toml.Unmarshal([]byte(raw), &cfg))
	require.Equal(t, "10.0.0.1:11211", cfg.SelfHostPort)
	require.Equal(t, []string{"10.0.0.1:11211", "10.0.0.2:11211-g0"}, cfg.Servers)
	require.Equal(t, "5s", cfg.WatchInterval)
	require.NoError(t, cfg.Validate())
}
