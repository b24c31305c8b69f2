package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/cachefleet/ketama/cluster"
	"github.com/cachefleet/ketama/cmd/ringctl/config"
	"github.com/cachefleet/ketama/pkg/logger"
	"github.com/cachefleet/ketama/pkg/service"
	"github.com/cachefleet/ketama/pkg/version"
)

// watcher re-reads the config file on an interval and reconfigures the ring
// when the server list changes.  The file is the membership source of truth;
// the cluster core only ever sees full server lists.
type watcher struct {
	configPath string
	interval   time.Duration
	cluster    *cluster.Config

	servers []string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ service.Component = (*watcher)(nil)

func (w *watcher) Open(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.loop(ctx)

	return nil
}

func (w *watcher) Close() error {
	w.cancel()
	w.wg.Wait()
	return nil
}

func (w *watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.sync()
		}
	}
}

func (w *watcher) sync() {
	fileConfig, err := readConfigFile(w.configPath)
	if err != nil {
		logger.Errorf("Failed to read %s: %s", w.configPath, err)
		return
	}

	if err := fileConfig.Validate(); err != nil {
		logger.Errorf("Invalid config %s: %s", w.configPath, err)
		return
	}

	if slices.Equal(fileConfig.Servers, w.servers) {
		if logger.IsDebug() {
			logger.Debugf("Membership unchanged, %d servers", len(w.servers))
		}
		return
	}

	before := w.cluster.Fingerprint()
	if !w.cluster.Reconfigure(fileConfig.Servers) {
		logger.Errorf("Failed to reconfigure cluster from %s", w.configPath)
		return
	}
	w.servers = fileConfig.Servers

	logger.Info("Cluster membership changed",
		"servers", len(fileConfig.Servers),
		"generation", w.cluster.Generation(),
		"before", fmt.Sprintf("%016x", before),
		"after", fmt.Sprintf("%016x", w.cluster.Fingerprint()))
}

func watchCmd(ctx *cli.Context) error {
	logger.Infof("%s version:%s", os.Args[0], version.String())

	configPath := ctx.String("config")
	if configPath == "" {
		return fmt.Errorf("config file is required.  Run `ringctl config` to generate one")
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	intervalStr := cfg.WatchInterval
	if v := ctx.String("interval"); v != "" {
		intervalStr = v
	}
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", intervalStr, err)
	}

	metricsAddr := cfg.MetricsAddr
	if v := ctx.String("metrics-addr"); v != "" {
		metricsAddr = v
	}
	if metricsAddr == "" {
		metricsAddr = config.DefaultConfig.MetricsAddr
	}

	c, err := newCluster(cfg)
	if err != nil {
		return err
	}

	w := &watcher{
		configPath: configPath,
		interval:   interval,
		cluster:    c,
		servers:    cfg.Servers,
	}

	if err := w.Open(context.Background()); err != nil {
		return err
	}

	logger.Infof("Metrics Listening at %s", metricsAddr)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsSrv := &http.Server{Addr: metricsAddr, Handler: metricsMux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(err.Error())
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, os.Interrupt, syscall.SIGTERM)
	sig := <-sc
	logger.Infof("Received signal %s, exiting", sig)

	metricsSrv.Shutdown(context.Background())

	return w.Close()
}
