package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the TOML file ringctl loads at startup.  The file is owned by
// surrounding tooling; the cluster core itself never reads it.
type Config struct {
	SelfHostPort string   `toml:"self-hostport" comment:"This node's own host:port identity."`
	Servers      []string `toml:"servers" comment:"Cluster server list, one host:port per entry.  Entries may carry a dash-delimited suffix."`
	Verbose      bool     `toml:"verbose" comment:"Enable debug logging."`

	WatchInterval string `toml:"watch-interval" comment:"How often ringctl watch re-reads this file."`
	MetricsAddr   string `toml:"metrics-addr" comment:"Listen address for /metrics while ringctl watch is running."`
}

var DefaultConfig = Config{
	WatchInterval: "10s",
	MetricsAddr:   ":9091",
}

func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		return fmt.Errorf("servers must be set")
	}
	for i, s := range c.Servers {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("servers[%d] must not be empty", i)
		}
	}
	if c.WatchInterval != "" {
		if _, err := time.ParseDuration(c.WatchInterval); err != nil {
			return fmt.Errorf("watch-interval %q is not a valid duration", c.WatchInterval)
		}
	}
	return nil
}
