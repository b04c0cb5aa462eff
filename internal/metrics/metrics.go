package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the admin console.
type Collector struct {
	Registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	consoleActions   *prometheus.CounterVec
	backendUp        prometheus.Gauge
	tenantUsers      *prometheus.GaugeVec
	tenantDevices    *prometheus.GaugeVec
}

// TenantUsage is the per-tenant quota usage reported after a stats load.
type TenantUsage struct {
	TenantID    int64
	Slug        string
	UserCount   int
	DeviceCount int
}

// New creates all metrics and registers them with a private registry.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wws_console_upstream_requests_total",
				Help: "Admin backend operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wws_console_upstream_request_duration_seconds",
				Help:    "Duration of admin backend operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"operation"},
		),
		consoleActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wws_console_actions_total",
				Help: "Operator actions handled by the console by result",
			},
			[]string{"action", "result"},
		),
		backendUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wws_console_backend_up",
				Help: "Result of the last backend probe (1=reachable, 0=unreachable)",
			},
		),
		tenantUsers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wws_console_tenant_users",
				Help: "Users per tenant as of the last stats load",
			},
			[]string{"tenant", "slug"},
		),
		tenantDevices: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wws_console_tenant_devices",
				Help: "Devices per tenant as of the last stats load",
			},
			[]string{"tenant", "slug"},
		),
	}

	c.Registry.MustRegister(
		c.upstreamRequests,
		c.upstreamDuration,
		c.consoleActions,
		c.backendUp,
		c.tenantUsers,
		c.tenantDevices,
	)

	return c
}

// ObserveRequest records one admin backend operation.
func (c *Collector) ObserveRequest(operation, outcome string, d time.Duration) {
	c.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	c.upstreamDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// CountRequest records an operation that was answered without a backend
// call. Only the counter moves; the latency histogram is left alone.
func (c *Collector) CountRequest(operation, outcome string) {
	c.upstreamRequests.WithLabelValues(operation, outcome).Inc()
}

// ConsoleAction counts an operator action and its result.
func (c *Collector) ConsoleAction(action, result string) {
	c.consoleActions.WithLabelValues(action, result).Inc()
}

// SetBackendUp sets the backend reachability gauge.
func (c *Collector) SetBackendUp(up bool) {
	val := 0.0
	if up {
		val = 1.0
	}
	c.backendUp.Set(val)
}

// UpdateTenantUsage replaces the per-tenant gauges with the given snapshot.
// Tenants absent from the snapshot are dropped.
func (c *Collector) UpdateTenantUsage(usage []TenantUsage) {
	c.tenantUsers.Reset()
	c.tenantDevices.Reset()
	for _, u := range usage {
		id := strconv.FormatInt(u.TenantID, 10)
		c.tenantUsers.WithLabelValues(id, u.Slug).Set(float64(u.UserCount))
		c.tenantDevices.WithLabelValues(id, u.Slug).Set(float64(u.DeviceCount))
	}
}
