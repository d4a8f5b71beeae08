package qtermsim

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "qtermsim"

// Metrics instruments gate application. A nil *Metrics records nothing.
type Metrics struct {
	// GatesApplied counts successful gate applications.
	// Labels: arity (1, 2), algorithm (insertion, dense)
	GatesApplied *prometheus.CounterVec

	// GateErrors counts rejected gates by error kind.
	GateErrors *prometheus.CounterVec

	// GateDuration measures the time spent in one ApplyGate call.
	// Labels: arity
	GateDuration *prometheus.HistogramVec
}

// NewMetrics creates the simulator metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GatesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gates_applied_total",
			Help:      "Gates applied to a register.",
		}, []string{"arity", "algorithm"}),
		GateErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gate_errors_total",
			Help:      "Gates rejected before application.",
		}, []string{"kind"}),
		GateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "gate_duration_seconds",
			Help:      "Wall time of a single gate application.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"arity"}),
	}
	if reg != nil {
		reg.MustRegister(m.GatesApplied, m.GateErrors, m.GateDuration)
	}
	return m
}

func (m *Metrics) recordGate(arity int, algo Algorithm, start time.Time) {
	if m == nil {
		return
	}
	a := strconv.Itoa(arity)
	m.GatesApplied.WithLabelValues(a, string(algo)).Inc()
	m.GateDuration.WithLabelValues(a).Observe(time.Since(start).Seconds())
}

func (m *Metrics) recordError(err error) {
	if m == nil {
		return
	}
	m.GateErrors.WithLabelValues(errorKind(err)).Inc()
}
