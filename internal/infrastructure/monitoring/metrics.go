// Package monitoring collects Prometheus metrics for the bridge and
// window layers. Exposition is optional and off by default; the
// counters are cheap enough to record unconditionally.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Bridge metrics
	MessagesTotal *prometheus.CounterVec
	CallsTotal    *prometheus.CounterVec
	CallDuration  *prometheus.HistogramVec
	EvalsTotal    *prometheus.CounterVec
	DecodeErrors  prometheus.Counter

	// Window metrics
	WindowsActive     prometheus.Gauge
	WindowsTotal      prometheus.Counter
	StyleApplications *prometheus.CounterVec
	WindowOps         *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMetrics creates a collector registered on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a collector registered on reg. Tests pass a
// fresh registry so repeated construction does not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		stop:      make(chan struct{}),

		MessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bamboo_bridge_messages_total",
				Help: "Total number of bridge messages",
			},
			[]string{"direction", "type"},
		),
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bamboo_bridge_calls_total",
				Help: "Total number of script-to-native calls",
			},
			[]string{"name", "status"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bamboo_bridge_call_duration_seconds",
				Help:    "Script-to-native call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"name"},
		),
		EvalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bamboo_bridge_evals_total",
				Help: "Total number of native-to-script evaluations",
			},
			[]string{"status"},
		),
		DecodeErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bamboo_bridge_decode_errors_total",
				Help: "Total number of dropped undecodable messages",
			},
		),

		WindowsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bamboo_windows_active",
				Help: "Number of open windows",
			},
		),
		WindowsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bamboo_windows_total",
				Help: "Total number of windows created",
			},
		),
		StyleApplications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bamboo_style_applications_total",
				Help: "Total number of style model applications",
			},
			[]string{"trigger"},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bamboo_window_ops_total",
				Help: "Total number of script-requested window operations",
			},
			[]string{"op"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bamboo_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-m.stop:
			return
		}
	}
}

// Close stops the uptime ticker goroutine. Recorded metrics stay
// readable; Close is idempotent.
func (m *Metrics) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// RecordMessage records one bridge message in the given direction.
func (m *Metrics) RecordMessage(direction, msgType string) {
	m.MessagesTotal.WithLabelValues(direction, msgType).Inc()
}

// RecordCall records a settled script-to-native call.
func (m *Metrics) RecordCall(name, status string, duration time.Duration) {
	m.CallsTotal.WithLabelValues(name, status).Inc()
	m.CallDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordEval records a settled native-to-script evaluation.
func (m *Metrics) RecordEval(status string) {
	m.EvalsTotal.WithLabelValues(status).Inc()
}

// RecordDecodeError records one dropped undecodable message.
func (m *Metrics) RecordDecodeError() {
	m.DecodeErrors.Inc()
}

// RecordStyleApplication records one full style model dispatch.
func (m *Metrics) RecordStyleApplication(trigger string) {
	m.StyleApplications.WithLabelValues(trigger).Inc()
}

// RecordWindowOp records one script-requested window operation.
func (m *Metrics) RecordWindowOp(op string) {
	m.WindowOps.WithLabelValues(op).Inc()
}

// IncWindows records a window creation.
func (m *Metrics) IncWindows() {
	m.WindowsActive.Inc()
	m.WindowsTotal.Inc()
}

// DecWindows records a window close.
func (m *Metrics) DecWindows() {
	m.WindowsActive.Dec()
}
