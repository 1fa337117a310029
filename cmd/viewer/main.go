package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/fleetglass/route-animator/core"
	"github.com/fleetglass/route-animator/frameloop"
	"github.com/fleetglass/route-animator/internal/config"
	"github.com/fleetglass/route-animator/internal/logging"
	"github.com/fleetglass/route-animator/internal/observability"
	"github.com/fleetglass/route-animator/internal/viewer"
	"github.com/fleetglass/route-animator/model"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults apply when empty)")
	solutionPath := flag.String("solution", "configs/solution.json", "path to the solved-routes JSON document")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "invalid configuration", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	metrics, err := observability.NewViewerCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	sol := loadSolution(ctx, log, *solutionPath)

	fit := core.ComputeViewFit(sol)
	scene := core.BuildScene(sol)
	camera := core.NewCamera(fit)

	policy := core.LoopToStart
	if cfg.Animation.EndOfRoute == config.PolicyHalt {
		policy = core.HaltAtEnd
	}
	engine := core.NewEngine(sol, cfg.Animation.Speed, policy)
	metrics.SetSolutionCounts(len(sol.Routes), sol.NumStops(), len(engine.Vehicles()))

	hub, err := viewer.NewHub(log, metrics, scene, fit, camera.State())
	if err != nil {
		log.Error(ctx, "hub init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	interval := time.Second / time.Duration(cfg.Animation.FPS)
	loop := frameloop.New(engine, camera, interval, hub.Broadcast)
	loop.SetObserver(metrics)
	hub.SetControls(loop)

	srv := viewer.NewServer(cfg.Server.Addr, hub, metrics, log)

	log.Info(ctx, "starting viewer",
		logging.Int("routes", len(sol.Routes)),
		logging.Int("vehicles", len(engine.Vehicles())),
		logging.Float("speed", engine.Speed),
		logging.Int("fps", cfg.Animation.FPS),
		logging.String("end_of_route", cfg.Animation.EndOfRoute),
	)

	loop.Start()
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Error(ctx, "server error", logging.String("error", err.Error()))
		}
	case s := <-sig:
		log.Info(ctx, "shutting down", logging.String("signal", s.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	loop.Stop()
}

// loadSolution surfaces a load failure once and falls back to an empty
// solution: the viewer still runs, with a degenerate framing, an empty
// scene, and no vehicles.
func loadSolution(ctx context.Context, log logging.Logger, path string) *model.Solution {
	tracer := otel.Tracer("route-animator/viewer")
	ctx, span := tracer.Start(ctx, "load_solution")
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		log.Error(ctx, "solution unavailable; continuing with empty solution",
			logging.String("path", path), logging.String("error", err.Error()))
		return &model.Solution{}
	}
	defer f.Close()

	sol, err := core.LoadSolution(f)
	if err != nil {
		log.Error(ctx, "solution rejected; continuing with empty solution",
			logging.String("path", path), logging.String("error", err.Error()))
		return &model.Solution{}
	}
	log.Info(ctx, "solution loaded",
		logging.Int("routes", len(sol.Routes)), logging.Int("stops", sol.NumStops()))
	return sol
}
