package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "tradesummit"

// Collectors groups the service metrics. Each instance owns its registry so
// tests can build as many as they like.
type Collectors struct {
	Registry *prometheus.Registry

	ResolverOutcomes *prometheus.CounterVec
	Actions          *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		ResolverOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_outcomes_total",
			Help:      "Resolver calls by resolver kind and outcome.",
		}, []string{"resolver", "outcome"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Action button clicks by audience, action and effect.",
		}, []string{"audience", "action", "effect"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	c.Registry.MustRegister(
		c.ResolverOutcomes,
		c.Actions,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
	)
	return c
}

// TrackWidgets exposes the live widget count through a gauge function.
func (c *Collectors) TrackWidgets(count func() int) {
	c.Registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_widgets",
		Help:      "Widgets currently registered.",
	}, func() float64 { return float64(count()) }))
}

func (c *Collectors) ResolverOutcome(resolver, outcome string) {
	c.ResolverOutcomes.WithLabelValues(resolver, outcome).Inc()
}

// Action records a click. effect is "none" when the action had no effect.
func (c *Collectors) Action(audience, action, effect string) {
	if effect == "" {
		effect = "none"
	}
	c.Actions.WithLabelValues(audience, action, effect).Inc()
}

func (c *Collectors) Request(route, method string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
