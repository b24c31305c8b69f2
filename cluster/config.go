package cluster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/cachefleet/ketama/metrics"
	"github.com/cachefleet/ketama/pkg/flake"
	"github.com/cachefleet/ketama/pkg/logger"
	"github.com/cespare/xxhash/v2"
)

// generation is one complete (servers, continuum, selfID) unit.  It is
// installed and replaced as a whole under the config lock and never mutated
// once published, so a lookup holding the read lock always observes a fully
// formed ring.
type generation struct {
	id          string
	servers     []ServerDescriptor
	continuum   []continuumPoint
	selfID      uint32
	fingerprint uint64
}

// owner returns the index of the server whose continuum point is the
// nearest one at or after p.  Points past the top of the ring wrap to the
// first entry.
func (g *generation) owner(p uint32) uint32 {
	i := sort.Search(len(g.continuum), func(i int) bool {
		return g.continuum[i].point >= p
	})
	if i == len(g.continuum) {
		i = 0
	}
	return g.continuum[i].index
}

func newGeneration(serverList []string, selfHostPort string) (*generation, error) {
	if len(serverList) == 0 {
		return nil, errors.New("empty server list")
	}

	servers := make([]ServerDescriptor, 0, len(serverList))
	var selfID uint32
	for i, entry := range serverList {
		s, err := parseServer(entry)
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)

		// When several entries name the self hostport, the last one wins.
		if s.HostPort == selfHostPort {
			selfID = uint32(i)
		}
	}

	id, err := flake.NextID()
	if err != nil {
		return nil, fmt.Errorf("generation id: %w", err)
	}

	g := &generation{
		id:        id,
		servers:   servers,
		continuum: buildContinuum(servers),
		selfID:    selfID,
	}

	x := xxhash.New()
	var b [8]byte
	for _, p := range g.continuum {
		binary.BigEndian.PutUint32(b[:4], p.point)
		binary.BigEndian.PutUint32(b[4:], p.index)
		x.Write(b[:])
	}
	g.fingerprint = x.Sum64()

	return g, nil
}

// Config owns the current cluster generation and answers key ownership
// queries against it.  Lookups and accessors take the read side of the
// lock; Reconfigure builds the next generation entirely off-lock and takes
// the write side only to swap it in, so readers never see a torn ring.
type Config struct {
	log *slog.Logger

	mu           sync.RWMutex
	selfHostPort string
	gen          *generation
	valid        bool
}

type ConfigOpts struct {
	// Logger receives reconfiguration warnings and generation transitions.
	// Defaults to the process logger.
	Logger *slog.Logger
}

// NewConfig returns a Config in the Invalid state.  Until the first
// successful Reconfigure every key is answered as owned by self.
func NewConfig(opts ConfigOpts) *Config {
	log := opts.Logger
	if log == nil {
		log = logger.Logger()
	}

	return &Config{
		log: log.With(slog.String("component", "cluster-config")),
	}
}

// SetSelfHostPort stores this node's own host:port identity.  It must be
// set before the first Reconfigure whose generation should identify self;
// an unset or unmatched identity leaves selfID at 0.
func (c *Config) SetSelfHostPort(hostport string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selfHostPort = hostport
}

// Reconfigure replaces the server list and continuum as one unit.  On any
// failure the previous generation is discarded and the config transitions
// to Invalid, even if it was Valid before: serving visibly stale answers is
// worse than serving the conservative default.  Returns whether the new
// generation was installed.
func (c *Config) Reconfigure(serverList []string) bool {
	c.mu.RLock()
	self := c.selfHostPort
	c.mu.RUnlock()

	next, err := newGeneration(serverList, self)
	if err != nil {
		c.log.Warn("Reconfiguration failed", "error", err)
		metrics.ReconfigureTotal.WithLabelValues("failure").Inc()

		// Gauges are updated inside the critical section so they always
		// agree with the installed generation under racing reconfigures.
		c.mu.Lock()
		c.gen = nil
		c.valid = false
		metrics.ConfigValid.Set(0)
		metrics.ClusterServers.Set(0)
		metrics.ContinuumPoints.Set(0)
		c.mu.Unlock()

		return false
	}

	c.mu.Lock()
	c.gen = next
	c.valid = true
	metrics.ConfigValid.Set(1)
	metrics.ClusterServers.Set(float64(len(next.servers)))
	metrics.ContinuumPoints.Set(float64(len(next.continuum)))
	c.mu.Unlock()

	c.log.Info("Installed cluster generation",
		slog.String("generation", next.id),
		slog.Int("servers", len(next.servers)),
		slog.Int("continuum", len(next.continuum)),
		slog.Uint64("self", uint64(next.selfID)),
		slog.String("fingerprint", fmt.Sprintf("%016x", next.fingerprint)))

	metrics.ReconfigureTotal.WithLabelValues("success").Inc()
	return true
}

// KeyIsMine reports whether this node owns key, along with the owner's
// index and this node's index within the current generation.  An Invalid
// config answers that self owns the key so a node that has not yet seen a
// successful reconfiguration serves requests instead of forwarding or
// rejecting them.
func (c *Config) KeyIsMine(key []byte) (mine bool, owner, self uint32) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		metrics.LookupsTotal.WithLabelValues("invalid").Inc()
		return true, 0, 0
	}

	g := c.gen
	owner = g.owner(ringPoint(key))
	if owner == g.selfID {
		metrics.LookupsTotal.WithLabelValues("mine").Inc()
	} else {
		metrics.LookupsTotal.WithLabelValues("peer").Inc()
	}
	return owner == g.selfID, owner, g.selfID
}

// Owner returns the hostport of the server that owns key.  The second
// return is false when the config is Invalid.
func (c *Config) Owner(key []byte) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return "", false
	}

	g := c.gen
	return g.servers[g.owner(ringPoint(key))].HostPort, true
}

// SelfID returns this node's index within the current generation, or 0
// when the config is Invalid.
func (c *Config) SelfID() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gen == nil {
		return 0
	}
	return c.gen.selfID
}

// NumServers returns the number of servers in the current generation.
func (c *Config) NumServers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gen == nil {
		return 0
	}
	return len(c.gen.servers)
}

// NumContinuum returns the number of points on the current continuum.
func (c *Config) NumContinuum() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gen == nil {
		return 0
	}
	return len(c.gen.continuum)
}

// IsValid reports whether a generation is installed and queryable.
func (c *Config) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Servers returns a copy of the current generation's hostports.
func (c *Config) Servers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.gen == nil {
		return nil
	}

	servers := make([]string, 0, len(c.gen.servers))
	for _, s := range c.gen.servers {
		servers = append(servers, s.HostPort)
	}
	return servers
}

// Generation returns the flake ID of the current generation, or "" when
// the config is Invalid.
func (c *Config) Generation() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return ""
	}
	return c.gen.id
}

// Fingerprint returns a digest of the current continuum's (point, index)
// pairs, or 0 when the config is Invalid.  Two nodes holding the same
// server list report the same fingerprint, which makes ring divergence
// cheap to detect across a fleet.
func (c *Config) Fingerprint() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return 0
	}
	return c.gen.fingerprint
}
