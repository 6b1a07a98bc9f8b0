// Package metrics collects Prometheus metrics for ticketapp.
//
// There is no HTTP endpoint; the registry is written to a node_exporter
// textfile-collector file at the end of each command (see WriteTextfile).
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/ticketapp/internal/calculator"
)

// Recorder is the metrics interface used by the service layer.
type Recorder interface {
	RecordOperation(name, result string, duration time.Duration)
	RecordLogin(success bool)
	SetTicketCounts(s calculator.Summary)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	logins     *prometheus.CounterVec
	tickets    *prometheus.GaugeVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketapp_operations_total",
			Help: "Application operations by name and result kind.",
		}, []string{"operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticketapp_operation_duration_seconds",
			Help:    "Duration of application operations.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketapp_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		tickets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ticketapp_tickets",
			Help: "Tickets currently stored, by status.",
		}, []string{"status"}),
	}

	reg.MustRegister(c.operations, c.latency, c.logins, c.tickets)
	return c
}

// RecordOperation counts one finished operation.
func (c *Collector) RecordOperation(name, result string, duration time.Duration) {
	c.operations.WithLabelValues(name, result).Inc()
	c.latency.WithLabelValues(name).Observe(duration.Seconds())
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// Logins returns the login counter for outcome ("success" or "failure").
func (c *Collector) Logins(outcome string) prometheus.Counter {
	return c.logins.WithLabelValues(outcome)
}

// SetTicketCounts publishes the latest dashboard counts.
func (c *Collector) SetTicketCounts(s calculator.Summary) {
	c.tickets.WithLabelValues("open").Set(float64(s.Open))
	c.tickets.WithLabelValues("in_progress").Set(float64(s.InProgress))
	c.tickets.WithLabelValues("closed").Set(float64(s.Closed))
}

// WriteTextfile writes everything in g to path in the text exposition
// format. An empty path is a no-op.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordOperation(string, string, time.Duration) {}
func (Noop) RecordLogin(bool)                              {}
func (Noop) SetTicketCounts(calculator.Summary)            {}
