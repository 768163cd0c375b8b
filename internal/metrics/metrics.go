// Package metrics collects and exposes Prometheus metrics for the
// authentication surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts authentication activity. A nil-safe wrapper is not
// provided: wiring always passes a real collector, tests included.
type Collector struct {
	registry *prometheus.Registry

	loginAttempts   *prometheus.CounterVec
	registrations   prometheus.Counter
	sessionRestores *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Successful local registrations.",
		}),
		sessionRestores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_session_restores_total",
			Help: "Session restorations by result.",
		}, []string{"result"}),
	}

	c.registry.MustRegister(
		c.loginAttempts,
		c.registrations,
		c.sessionRestores,
	)

	return c
}

// RecordLogin counts one attempt; outcome is one of authenticated,
// rejected, conflict, error.
func (c *Collector) RecordLogin(method, outcome string) {
	c.loginAttempts.WithLabelValues(method, outcome).Inc()
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordRestore counts one session restoration; result is
// authenticated or anonymous.
func (c *Collector) RecordRestore(result string) {
	c.sessionRestores.WithLabelValues(result).Inc()
}

// Handler exposes the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
