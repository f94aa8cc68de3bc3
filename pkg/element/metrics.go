package element

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the element usage metrics interceptor.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "glint").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the usage metrics interceptor.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "glint",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// usageMetrics holds the Prometheus metrics for element usage.
type usageMetrics struct {
	elementsTotal *prometheus.CounterVec
}

// Metrics on the default registry are shared per config, so that multiple
// generators reuse one counter without duplicate registration while
// differing namespaces or labels still get their own.
var (
	defaultUsageMetricsMu sync.Mutex
	defaultUsageMetrics   = make(map[string]*usageMetrics)
)

// fingerprint identifies a config for the shared-metrics cache.
func (c MetricsConfig) fingerprint() string {
	keys := make([]string, 0, len(c.ConstLabels))
	for k := range c.ConstLabels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Namespace)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(c.ConstLabels[k])
	}
	return b.String()
}

func initUsageMetrics(config MetricsConfig) *usageMetrics {
	factory := promauto.With(config.Registry)

	return &usageMetrics{
		elementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "elements_total",
			Help:        "Total number of elements enqueued, by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),
	}
}

// UsageMetrics returns an interceptor that counts element submissions per
// kind, labeled with the submission status.
//
// Example:
//
//	dg := element.NewDeltaGenerator(queue,
//	    element.WithInterceptors(element.UsageMetrics()))
func UsageMetrics(opts ...MetricsOption) Interceptor {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var m *usageMetrics
	if config.Registry == prometheus.DefaultRegisterer {
		key := config.fingerprint()
		defaultUsageMetricsMu.Lock()
		m = defaultUsageMetrics[key]
		if m == nil {
			m = initUsageMetrics(config)
			defaultUsageMetrics[key] = m
		}
		defaultUsageMetricsMu.Unlock()
	} else {
		m = initUsageMetrics(config)
	}

	return func(ctx context.Context, kind string, next func() error) error {
		err := next()
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.elementsTotal.WithLabelValues(kind, status).Inc()
		return err
	}
}
