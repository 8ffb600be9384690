package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garysibanda/howitzer-simulator/core"
	"github.com/garysibanda/howitzer-simulator/internal/config"
	"github.com/garysibanda/howitzer-simulator/internal/httpapi"
	"github.com/garysibanda/howitzer-simulator/internal/logging"
	"github.com/garysibanda/howitzer-simulator/internal/observability"
	"github.com/garysibanda/howitzer-simulator/model"
	"github.com/garysibanda/howitzer-simulator/timectrl"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	duration := flag.Duration("duration", 0, "total simulation duration; 0 runs until interrupted")
	accelerated := flag.Bool("accelerated", false, "run sim time as fast as possible instead of wall-clock")
	autofire := flag.Bool("autofire", false, "fire a new round automatically whenever the gun is idle")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: false,
	})
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	metrics, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	var terrain core.Terrain
	switch cfg.Sim.Terrain {
	case "flat":
		terrain = core.FlatTerrain{TargetPos: model.Position{X: 0.75 * cfg.Sim.FieldWidthMeters}}
	default:
		terrain = core.NewHillTerrain(cfg.Sim.FieldWidthMeters, cfg.Sim.TerrainSeed)
	}

	engine := core.NewSimulationEngine(terrain,
		core.WithLogger(log),
		core.WithMetricsRecorder(metrics),
		core.WithHitTolerance(cfg.Sim.HitToleranceMeters),
	)
	gun := engine.Howitzer()
	if err := gun.SetElevationBounds(cfg.Howitzer.MinElevationDeg, cfg.Howitzer.MaxElevationDeg); err != nil {
		log.Error(ctx, "howitzer bounds invalid", logging.String("error", err.Error()))
		os.Exit(1)
	}
	gun.SetElevationDegrees(cfg.Howitzer.ElevationDegrees)
	if err := gun.SetMuzzleVelocity(cfg.Howitzer.MuzzleVelocity); err != nil {
		log.Error(ctx, "muzzle velocity invalid", logging.String("error", err.Error()))
		os.Exit(1)
	}

	api := httpapi.NewServer(engine, log)

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	tc := timectrl.NewTimeController(time.Duration(cfg.Sim.TickSeconds*float64(time.Second)), mode)
	tc.AddListener(func(float64) {
		api.LockEngine(func(se *core.SimulationEngine) {
			if *autofire && se.Phase() == core.PhaseIdle {
				if err := se.Fire(ctx); err != nil {
					log.Warn(ctx, "autofire failed", logging.String("error", err.Error()))
					return
				}
			}
			if err := se.Tick(tc.TickSeconds()); err != nil {
				log.Error(ctx, "tick failed", logging.String("error", err.Error()))
			}
		})
	})

	apiServer := &http.Server{Addr: cfg.Server.APIAddr, Handler: api.Router()}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{Addr: cfg.Server.MetricsAddr, Handler: metricsMux}

	go func() {
		log.Info(ctx, "api server listening", logging.String("addr", cfg.Server.APIAddr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "api server failed", logging.String("error", err.Error()))
		}
	}()
	go func() {
		log.Info(ctx, "metrics server listening", logging.String("addr", cfg.Server.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logging.String("error", err.Error()))
		}
	}()

	log.Info(ctx, "simulation starting",
		logging.Float64("tick_seconds", cfg.Sim.TickSeconds),
		logging.String("terrain", cfg.Sim.Terrain),
		logging.Float64("hit_tolerance_m", cfg.Sim.HitToleranceMeters),
		logging.Any("accelerated", *accelerated),
	)
	done := tc.Start(*duration)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		log.Info(ctx, "simulation duration reached")
	case sig := <-sigCh:
		log.Info(ctx, "shutting down", logging.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "api server shutdown failed", logging.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "metrics server shutdown failed", logging.String("error", err.Error()))
	}

	api.LockEngine(func(se *core.SimulationEngine) {
		log.Info(ctx, "final scoreboard",
			logging.Int("shots", se.ShotsAttempted()),
			logging.Int("hits", se.Score()),
			logging.Float64("hit_rate", se.HitRate()),
		)
	})
}
