package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineCollector bundles Prometheus metrics for the catalog build
// pipeline and provides a ready-to-serve /metrics handler.
type PipelineCollector struct {
	gatherer prometheus.Gatherer

	CategoryUpdates *prometheus.CounterVec
	ParseFailures   *prometheus.CounterVec
	BuildDuration   prometheus.Histogram

	CatalogObjects *prometheus.GaugeVec
	LastBuild      prometheus.Gauge
}

// NewPipelineCollector registers pipeline Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewPipelineCollector(reg prometheus.Registerer) (*PipelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_category_updates_total",
		Help: "Category passes per catalog build, labeled by category and result (ok or empty).",
	}, []string{"category", "result"})
	updates, err := registerCounterVec(reg, updates, "catalog_category_updates_total")
	if err != nil {
		return nil, err
	}

	parseFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_parse_failures_total",
		Help: "TLE groups skipped as malformed, labeled by category.",
	}, []string{"category"})
	parseFailures, err = registerCounterVec(reg, parseFailures, "catalog_parse_failures_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_build_duration_seconds",
		Help:    "Wall time of whole-catalog builds in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
	duration, err = registerHistogram(reg, duration, "catalog_build_duration_seconds")
	if err != nil {
		return nil, err
	}

	objects := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_objects",
		Help: "Objects in the latest catalog build, labeled by class.",
	}, []string{"class"})
	objects, err = registerGaugeVec(reg, objects, "catalog_objects")
	if err != nil {
		return nil, err
	}

	lastBuild, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_last_build_timestamp_seconds",
		Help: "Unix timestamp of the latest successful catalog build.",
	}), "catalog_last_build_timestamp_seconds")
	if err != nil {
		return nil, err
	}

	return &PipelineCollector{
		gatherer:        gatherer,
		CategoryUpdates: updates,
		ParseFailures:   parseFailures,
		BuildDuration:   duration,
		CatalogObjects:  objects,
		LastBuild:       lastBuild,
	}, nil
}

// IncCategoryUpdate counts one category pass with its result.
func (c *PipelineCollector) IncCategoryUpdate(category, result string) {
	if c == nil || c.CategoryUpdates == nil {
		return
	}
	c.CategoryUpdates.WithLabelValues(category, result).Inc()
}

// IncParseFailures counts n skipped TLE groups for a category.
func (c *PipelineCollector) IncParseFailures(category string, n int) {
	if c == nil || c.ParseFailures == nil || n <= 0 {
		return
	}
	c.ParseFailures.WithLabelValues(category).Add(float64(n))
}

// ObserveBuildDuration records the wall time of one build pass.
func (c *PipelineCollector) ObserveBuildDuration(seconds float64) {
	if c == nil || c.BuildDuration == nil {
		return
	}
	c.BuildDuration.Observe(seconds)
}

// SetCatalogCounts publishes the class breakdown of the latest build.
func (c *PipelineCollector) SetCatalogCounts(satellites, debris int) {
	if c == nil || c.CatalogObjects == nil {
		return
	}
	c.CatalogObjects.WithLabelValues("satellite").Set(float64(satellites))
	c.CatalogObjects.WithLabelValues("debris").Set(float64(debris))
}

// SetLastBuild publishes the timestamp of the latest build.
func (c *PipelineCollector) SetLastBuild(t time.Time) {
	if c == nil || c.LastBuild == nil {
		return
	}
	c.LastBuild.Set(float64(t.Unix()))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PipelineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
