package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/orrerylab/orrery"
)

// orreryd serves the simulation to an external UI: a JSON API over the
// snapshot and the mutating entry points, a websocket snapshot stream, and
// Prometheus metrics.

var (
	configPath  string
	addr        string
	metricsAddr string
	tick        time.Duration
	streamEvery time.Duration
)

func init() {
	flag.StringVar(&configPath, "config", "", "optional clock/view config TOML file")
	flag.StringVar(&addr, "addr", ":8080", "API listen address")
	flag.StringVar(&metricsAddr, "metrics-addr", ":9090", "metrics listen address")
	flag.DurationVar(&tick, "tick", 16*time.Millisecond, "clock tick interval")
	flag.DurationVar(&streamEvery, "stream-every", 50*time.Millisecond, "websocket snapshot cadence")
}

func main() {
	flag.Parse()
	cfg := orrery.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = orrery.LoadConfig(configPath); err != nil {
			log.Fatalf("loading config: %s", err)
		}
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	sys := orrery.NewSystem(cfg, logger)
	clock := orrery.NewClock(sys, orrery.MonotonicTime{}, tick, logger)
	clock.Start()
	defer clock.Stop()

	metrics := NewMetricsCollector()
	go metrics.ServeMetrics(metricsAddr)

	hub := NewStreamHub(sys, streamEvery, metrics)
	go hub.Run()
	defer hub.Stop()

	server := NewServer(sys, hub, metrics, addr)
	go func() {
		log.Printf("orreryd listening on %s (metrics on %s)", addr, metricsAddr)
		if err := server.ListenAndServe(); err != nil {
			log.Printf("server stopped: %s", err)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	log.Print("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %s", err)
	}
}
