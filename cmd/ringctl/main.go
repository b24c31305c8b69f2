package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/cachefleet/ketama/cluster"
	"github.com/cachefleet/ketama/cmd/ringctl/config"
	"github.com/cachefleet/ketama/pkg/flake"
	"github.com/cachefleet/ketama/pkg/logger"
	"github.com/cachefleet/ketama/pkg/version"
)

func main() {
	app := &cli.App{
		Name:  "ringctl",
		Usage: "ketama cluster ring operator tool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Config file path"},
			&cli.StringSliceFlag{Name: "server", Aliases: []string{"s"}, Usage: "Cluster server entry (host:port, may carry a dash-delimited suffix).  Overrides the config file"},
			&cli.StringFlag{Name: "self", Usage: "This node's host:port identity.  Overrides the config file"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		},

		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Generate a config file",
				Action: func(c *cli.Context) error {
					buf := bytes.Buffer{}
					enc := toml.NewEncoder(&buf)
					enc.SetIndentTables(true)
					if err := enc.Encode(config.DefaultConfig); err != nil {
						return err
					}

					fmt.Println(buf.String())

					return nil
				},
			},
			{
				Name:      "owner",
				Usage:     "Print the owning server for each key",
				ArgsUsage: "key [key ...]",
				Action:    ownerCmd,
			},
			{
				Name:   "ring",
				Usage:  "Print the current ring",
				Action: ringCmd,
			},
			{
				Name:  "distribution",
				Usage: "Estimate the share of keys owned by each server",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "samples", Value: 100000, Usage: "Number of synthetic keys to sample"},
				},
				Action: distributionCmd,
			},
			{
				Name:  "watch",
				Usage: "Re-read the config file periodically and reconfigure the ring on membership changes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "interval", Usage: "Override the config file watch-interval"},
					&cli.StringFlag{Name: "metrics-addr", Usage: "Override the config file metrics-addr"},
				},
				Action: watchCmd,
			},
		},

		Version: version.String(),
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err.Error())
	}
}

// loadConfig merges the optional TOML file with flag overrides.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.DefaultConfig

	if path := ctx.String("config"); path != "" {
		fileConfig, err := readConfigFile(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileConfig
	}

	if servers := ctx.StringSlice("server"); len(servers) > 0 {
		cfg.Servers = servers
	}
	if self := ctx.String("self"); self != "" {
		cfg.SelfHostPort = self
	}
	if ctx.Bool("verbose") {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		logger.SetLevel(slog.LevelDebug)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func readConfigFile(path string) (config.Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, err
	}

	var fileConfig config.Config
	if err := toml.Unmarshal(configBytes, &fileConfig); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			fmt.Println(derr.String())
			row, col := derr.Position()
			fmt.Println("error occurred at row", row, "column", col)
		}

		return config.Config{}, err
	}

	return fileConfig, nil
}

// newCluster builds a cluster config from the merged settings.  The first
// reconfiguration happens here; a rejected server list is a startup error.
func newCluster(cfg config.Config) (*cluster.Config, error) {
	c := cluster.NewConfig(cluster.ConfigOpts{})
	if cfg.SelfHostPort != "" {
		c.SetSelfHostPort(cfg.SelfHostPort)
	}

	if !c.Reconfigure(cfg.Servers) {
		return nil, fmt.Errorf("reconfiguration rejected the server list")
	}

	return c, nil
}

func ownerCmd(ctx *cli.Context) error {
	logger.Infof("%s version:%s", os.Args[0], version.String())

	if ctx.NArg() == 0 {
		return fmt.Errorf("at least one key is required")
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	c, err := newCluster(cfg)
	if err != nil {
		return err
	}

	for _, key := range ctx.Args().Slice() {
		mine, owner, self := c.KeyIsMine([]byte(key))
		hostport, _ := c.Owner([]byte(key))

		fmt.Printf("%s\towner=%s (index %d)", key, hostport, owner)
		if cfg.SelfHostPort != "" {
			fmt.Printf("\tmine=%v (self index %d)", mine, self)
		}
		fmt.Println()
	}

	return nil
}

func ringCmd(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	c, err := newCluster(cfg)
	if err != nil {
		return err
	}

	gen := c.Generation()
	fmt.Printf("generation:  %s", gen)
	if createdAt, err := flake.ParseFlakeID(gen); err == nil {
		fmt.Printf(" (created %s)", createdAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	fmt.Println()
	fmt.Printf("fingerprint: %016x\n", c.Fingerprint())
	fmt.Printf("continuum:   %d points\n", c.NumContinuum())
	fmt.Printf("servers:     %d\n", c.NumServers())

	selfID := c.SelfID()
	for i, hostport := range c.Servers() {
		marker := ""
		if cfg.SelfHostPort != "" && uint32(i) == selfID && hostport == cfg.SelfHostPort {
			marker = "\t(self)"
		}
		fmt.Printf("  [%d] %s%s\n", i, hostport, marker)
	}

	return nil
}

func distributionCmd(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	c, err := newCluster(cfg)
	if err != nil {
		return err
	}

	samples := ctx.Int("samples")
	if samples < 1 {
		return fmt.Errorf("samples must be positive")
	}

	counts := make([]int, c.NumServers())
	for i := 0; i < samples; i++ {
		_, owner, _ := c.KeyIsMine(fmt.Appendf(nil, "ringctl-sample-%d", i))
		counts[owner]++
	}

	for i, hostport := range c.Servers() {
		fmt.Printf("  [%d] %s\t%d keys\t%.2f%%\n", i, hostport, counts[i], 100*float64(counts[i])/float64(samples))
	}

	return nil
}
