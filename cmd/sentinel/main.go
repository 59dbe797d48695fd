// Command sentinel manages the Orbital Sentinel TLE catalog: one-shot
// updates, scheduled daily rebuilds, and an HTTP serving mode.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	cli "github.com/jawher/mow.cli"

	"github.com/signalsfoundry/orbital-sentinel/catalog"
	"github.com/signalsfoundry/orbital-sentinel/feed"
	"github.com/signalsfoundry/orbital-sentinel/internal/config"
	"github.com/signalsfoundry/orbital-sentinel/internal/logging"
	"github.com/signalsfoundry/orbital-sentinel/internal/observability"
	"github.com/signalsfoundry/orbital-sentinel/internal/publish"
	"github.com/signalsfoundry/orbital-sentinel/internal/state"
	"github.com/signalsfoundry/orbital-sentinel/internal/store"
	"github.com/signalsfoundry/orbital-sentinel/model"
	"github.com/signalsfoundry/orbital-sentinel/orbit"
	"github.com/signalsfoundry/orbital-sentinel/sched"
	"github.com/signalsfoundry/orbital-sentinel/tle"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Cli {
	app := cli.App("sentinel", "Orbital Sentinel TLE catalog manager")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	dataDir := app.StringOpt("d data-dir", cfg.DataDir, "directory for TLE cache and catalog output")

	app.Command("update", "fetch stale feeds and rebuild the catalog once", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			rt := newRuntime(cfg, *dataDir)
			defer rt.close()

			res := rt.builder.Build(context.Background())
			if err := rt.persist(context.Background(), res); err != nil {
				rt.log.Error(context.Background(), "catalog persistence failed",
					logging.String("error", err.Error()))
				cli.Exit(1)
			}
			fmt.Printf("Saved %d space objects to %s\n", len(res.Objects), rt.catalogPath)
		}
	})

	app.Command("schedule", "rebuild the catalog daily at a fixed hour", func(cmd *cli.Cmd) {
		hour := cmd.IntOpt("H hour", cfg.UpdateHour, "hour of day (0-23) for the daily rebuild")
		cmd.Action = func() {
			rt := newRuntime(cfg, *dataDir)
			defer rt.close()

			runScheduled(rt, *hour, cfg.MetricsAddr, nil)
		}
	})

	app.Command("serve", "serve the catalog over HTTP with scheduled rebuilds", func(cmd *cli.Cmd) {
		addr := cmd.StringOpt("a addr", cfg.HTTPAddr, "HTTP listen address for the catalog API")
		hour := cmd.IntOpt("H hour", cfg.UpdateHour, "hour of day (0-23) for the daily rebuild")
		cmd.Action = func() {
			rt := newRuntime(cfg, *dataDir)
			defer rt.close()

			catalogState := state.NewCatalogState(state.WithMetricsRecorder(rt.collector))
			apiSrv := serveCatalog(*addr, catalogState, rt.log)
			defer shutdownHTTP(apiSrv)

			runScheduled(rt, *hour, cfg.MetricsAddr, catalogState)
		}
	})

	app.Command("track", "print the current ECEF position of a cached object", func(cmd *cli.Cmd) {
		catnum := cmd.StringArg("CATNUM", "", "NORAD catalog number, e.g. 25544")
		cmd.Action = func() {
			rt := newRuntime(cfg, *dataDir)
			defer rt.close()

			if err := track(rt, *catnum); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cli.Exit(1)
			}
		}
	})

	return app
}

// runtime bundles the wired pipeline for one command invocation.
type runtime struct {
	log         logging.Logger
	collector   *observability.PipelineCollector
	feeds       *feed.Client
	builder     *catalog.Builder
	jsonWriter  *store.JSONWriter
	catalogPath string

	sqlite    *store.SQLiteStore
	publisher *publish.KafkaPublisher

	shutdownTracing func(context.Context) error
}

func newRuntime(cfg config.Config, dataDir string) *runtime {
	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		cli.Exit(1)
	}

	collector, err := observability.NewPipelineCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		cli.Exit(1)
	}

	feeds := feed.NewClient(dataDir,
		feed.WithBaseURL(cfg.FeedURL),
		feed.WithMaxAge(cfg.UpdateInterval),
		feed.WithLogger(log),
	)

	rt := &runtime{
		log:       log,
		collector: collector,
		feeds:     feeds,
		builder: catalog.NewBuilder(feeds,
			catalog.WithLogger(log),
			catalog.WithMetrics(collector),
		),
		catalogPath:     filepath.Join(dataDir, "space_objects.json"),
		shutdownTracing: shutdownTracing,
	}
	rt.jsonWriter = store.NewJSONWriter(rt.catalogPath)

	if cfg.SQLitePath != "" {
		sqlite, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Error(ctx, "failed to open sqlite store", logging.String("error", err.Error()))
			cli.Exit(1)
		}
		rt.sqlite = sqlite
	}

	if cfg.KafkaBrokers != "" {
		rt.publisher = publish.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	return rt
}

// persist writes the build everywhere it is configured to go. JSON and
// SQLite failures are fatal: a failed write means stale data for the next
// consumer. Kafka publishing is best-effort.
func (rt *runtime) persist(ctx context.Context, res *catalog.BuildResult) error {
	if err := rt.jsonWriter.Write(res.Objects); err != nil {
		return err
	}
	if rt.sqlite != nil {
		if err := rt.sqlite.Replace(ctx, res.Objects); err != nil {
			return err
		}
	}
	if rt.publisher != nil {
		if err := rt.publisher.Publish(ctx, res.Objects); err != nil {
			rt.log.Warn(ctx, "kafka publish failed", logging.String("error", err.Error()))
		}
	}
	return nil
}

func (rt *runtime) close() {
	if rt.sqlite != nil {
		_ = rt.sqlite.Close()
	}
	if rt.publisher != nil {
		_ = rt.publisher.Close()
	}
	observability.ShutdownWithTimeout(context.Background(), rt.shutdownTracing, rt.log)
}

// runScheduled blocks running daily rebuilds until interrupted. Each run
// builds, persists, and (when serving) swaps the in-memory catalog.
func runScheduled(rt *runtime, hour int, metricsAddr string, catalogState *state.CatalogState) {
	ctx := context.Background()
	metricsSrv := serveMetrics(metricsAddr, rt.collector, rt.log)
	defer shutdownHTTP(metricsSrv)

	scheduler := sched.New(hour)
	scheduler.AddListener(func(now time.Time) {
		res := rt.builder.Build(ctx)
		if err := rt.persist(ctx, res); err != nil {
			rt.log.Error(ctx, "catalog persistence failed", logging.String("error", err.Error()))
			return
		}
		if catalogState != nil {
			catalogState.Replace(res.Objects, res.BuiltAt)
		}
	})

	rt.log.Info(ctx, "scheduled daily catalog rebuilds", logging.Int("hour", hour))

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stopCh := make(chan struct{})
	done := scheduler.Start(stopCh)
	<-stopCtx.Done()
	close(stopCh)
	<-done

	rt.log.Info(ctx, "scheduler stopped")
}

// catalogHandler serves the latest catalog snapshot as JSON plus a health
// probe.
func catalogHandler(catalogState *state.CatalogState, log logging.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/objects", func(w http.ResponseWriter, r *http.Request) {
		objects, builtAt := catalogState.Snapshot()
		if objects == nil {
			objects = []model.SpaceObject{}
		}
		w.Header().Set("Content-Type", "application/json")
		if !builtAt.IsZero() {
			w.Header().Set("Last-Modified", builtAt.UTC().Format(http.TimeFormat))
		}
		if err := json.NewEncoder(w).Encode(objects); err != nil {
			log.Warn(r.Context(), "failed to encode catalog response", logging.String("error", err.Error()))
		}
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// serveCatalog exposes the latest catalog as JSON.
func serveCatalog(addr string, catalogState *state.CatalogState, log logging.Logger) *http.Server {
	srv := &http.Server{Addr: addr, Handler: catalogHandler(catalogState, log)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(context.Background(), "catalog server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving catalog API", logging.String("addr", addr))
	return srv
}

func serveMetrics(addr string, collector *observability.PipelineCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

func shutdownHTTP(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

// track locates a catalog number in the cached feeds and prints its current
// SGP4-propagated ECEF position.
func track(rt *runtime, catnum string) error {
	set, err := findCached(rt, catnum)
	if err != nil {
		return err
	}

	pos, err := orbit.PositionAt(set.Line1, set.Line2, time.Now())
	if err != nil {
		return fmt.Errorf("propagate %q: %w", set.Name, err)
	}

	fmt.Printf("%s (%s)\nECEF position (km): X=%.1f Y=%.1f Z=%.1f\n",
		set.Name, catnum, pos.X, pos.Y, pos.Z)
	return nil
}

func findCached(rt *runtime, catnum string) (model.ElementSet, error) {
	for _, cat := range feed.Categories() {
		data, err := os.ReadFile(rt.feeds.CachePath(cat))
		if err != nil {
			continue
		}
		for _, set := range tle.Parse(string(data)) {
			if set.CatalogNumber == catnum {
				return set, nil
			}
		}
	}
	return model.ElementSet{}, fmt.Errorf("catalog number %q not found in cached feeds; run `sentinel update` first", catnum)
}
