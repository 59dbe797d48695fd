package catalog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/orbital-sentinel/feed"
	"github.com/signalsfoundry/orbital-sentinel/internal/logging"
	"github.com/signalsfoundry/orbital-sentinel/model"
	"github.com/signalsfoundry/orbital-sentinel/orbit"
	"github.com/signalsfoundry/orbital-sentinel/tle"
)

const tracerName = "github.com/signalsfoundry/orbital-sentinel/catalog"

// TextSource provides raw TLE text for a category. feed.Client is the
// production implementation; tests supply fixtures.
type TextSource interface {
	Text(ctx context.Context, cat feed.Category) (string, error)
}

// BuildMetrics records pipeline counters. Implemented by
// observability.PipelineCollector; a nil recorder is allowed.
type BuildMetrics interface {
	IncCategoryUpdate(category, result string)
	IncParseFailures(category string, n int)
	ObserveBuildDuration(seconds float64)
	SetCatalogCounts(satellites, debris int)
	SetLastBuild(t time.Time)
}

// BuildResult is the outcome of one whole-catalog build pass.
type BuildResult struct {
	Objects []model.SpaceObject
	BuiltAt time.Time

	// CategoriesEmpty counts categories that yielded zero records this
	// pass (fetch failed with no cache, or empty feed).
	CategoriesEmpty int
	// ParseFailures counts triplets skipped across all categories.
	ParseFailures int
}

// Builder runs the synchronous fetch, parse, derive, assemble pipeline over
// every configured category, satellites before debris, in declared order.
type Builder struct {
	source TextSource
	log    logging.Logger

	metrics BuildMetrics
	now     func() time.Time

	satellites []feed.Category
	debris     []feed.Category
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMetrics attaches a pipeline metrics recorder.
func WithMetrics(m BuildMetrics) BuilderOption {
	return func(b *Builder) { b.metrics = m }
}

// WithClock overrides the build timestamp source (tests).
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithCategories overrides the category tables (tests and partial runs).
// Processing order follows the slices as given.
func WithCategories(satellites, debris []feed.Category) BuilderOption {
	return func(b *Builder) {
		b.satellites = satellites
		b.debris = debris
	}
}

// NewBuilder constructs a Builder over the given text source with the full
// category tables.
func NewBuilder(source TextSource, opts ...BuilderOption) *Builder {
	b := &Builder{
		source:     source,
		log:        logging.Noop(),
		now:        time.Now,
		satellites: feed.SatelliteCategories,
		debris:     feed.DebrisCategories,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build regenerates the whole catalog. Category-level failures are logged
// and counted but never abort the pass; the result always covers every
// category that yielded records. Entities keep category order, and parse
// order within a category.
func (b *Builder) Build(ctx context.Context) *BuildResult {
	ctx, log := logging.WithBuildLogger(ctx, b.log)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.build")
	defer span.End()

	started := time.Now()
	result := &BuildResult{BuiltAt: b.now().UTC()}

	for _, cat := range b.satellites {
		b.buildCategory(ctx, log, cat, result)
	}
	for _, cat := range b.debris {
		b.buildCategory(ctx, log, cat, result)
	}

	satellites, debris := 0, 0
	for _, obj := range result.Objects {
		if obj.Type == model.ClassDebris {
			debris++
		} else {
			satellites++
		}
	}

	span.SetAttributes(
		attribute.Int("catalog.objects", len(result.Objects)),
		attribute.Int("catalog.parse_failures", result.ParseFailures),
	)
	if b.metrics != nil {
		b.metrics.ObserveBuildDuration(time.Since(started).Seconds())
		b.metrics.SetCatalogCounts(satellites, debris)
		b.metrics.SetLastBuild(result.BuiltAt)
	}

	log.Info(ctx, "catalog build complete",
		logging.Int("objects", len(result.Objects)),
		logging.Int("satellites", satellites),
		logging.Int("debris", debris),
		logging.Int("empty_categories", result.CategoriesEmpty),
		logging.Int("parse_failures", result.ParseFailures),
	)
	return result
}

func (b *Builder) buildCategory(ctx context.Context, log logging.Logger, cat feed.Category, result *BuildResult) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.category",
		trace.WithAttributes(attribute.String("category", cat.Name)))
	defer span.End()

	text, err := b.source.Text(ctx, cat)
	if err != nil {
		log.Warn(ctx, "category yielded no data",
			logging.String("category", cat.Name),
			logging.String("error", err.Error()),
		)
		result.CategoriesEmpty++
		if b.metrics != nil {
			b.metrics.IncCategoryUpdate(cat.Name, "empty")
		}
		return
	}

	failures := 0
	sets := tle.ParseWithReporter(text, func(name string, err error) {
		failures++
		log.Warn(ctx, "skipping malformed TLE group",
			logging.String("category", cat.Name),
			logging.String("object", name),
			logging.String("error", err.Error()),
		)
	})

	for _, set := range sets {
		result.Objects = append(result.Objects, NewEntity(orbit.Derive(set), result.BuiltAt))
	}

	result.ParseFailures += failures
	if b.metrics != nil {
		b.metrics.IncCategoryUpdate(cat.Name, "ok")
		if failures > 0 {
			b.metrics.IncParseFailures(cat.Name, failures)
		}
	}

	span.SetAttributes(attribute.Int("category.objects", len(sets)))
	log.Debug(ctx, "category assembled",
		logging.String("category", cat.Name),
		logging.Int("objects", len(sets)),
		logging.Int("parse_failures", failures),
	)
}
