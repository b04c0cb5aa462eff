package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getGaugeValue(g prometheus.Gauge) float64 {
	m := &dto.Metric{}
	g.Write(m)
	return m.GetGauge().GetValue()
}

func getCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	c.Write(m)
	return m.GetCounter().GetValue()
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	// Two collectors must not collide on registration.
	a := New()
	b := New()
	if a.Registry == b.Registry {
		t.Fatal("expected separate registries")
	}
}

func TestObserveRequest(t *testing.T) {
	c := New()

	c.ObserveRequest("fetch_admin_stats", "ok", 100*time.Millisecond)
	c.ObserveRequest("fetch_admin_stats", "ok", 200*time.Millisecond)
	c.ObserveRequest("fetch_admin_stats", "http_error", 50*time.Millisecond)

	if v := getCounterValue(c.upstreamRequests.WithLabelValues("fetch_admin_stats", "ok")); v != 2 {
		t.Errorf("expected ok=2, got %v", v)
	}
	if v := getCounterValue(c.upstreamRequests.WithLabelValues("fetch_admin_stats", "http_error")); v != 1 {
		t.Errorf("expected http_error=1, got %v", v)
	}

	families, err := c.Registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, f := range families {
		if f.GetName() == "wws_console_upstream_request_duration_seconds" {
			found = true
			m := f.GetMetric()
			if len(m) == 0 {
				t.Fatal("no metric samples")
			}
			if m[0].GetHistogram().GetSampleCount() != 3 {
				t.Errorf("expected 3 samples, got %d", m[0].GetHistogram().GetSampleCount())
			}
		}
	}
	if !found {
		t.Error("request duration metric not found")
	}
}

func TestConsoleAction(t *testing.T) {
	c := New()

	c.ConsoleAction("create_tenant", "success")
	c.ConsoleAction("create_tenant", "failure")
	c.ConsoleAction("create_tenant", "failure")

	if v := getCounterValue(c.consoleActions.WithLabelValues("create_tenant", "failure")); v != 2 {
		t.Errorf("expected failure=2, got %v", v)
	}
}

func TestSetBackendUp(t *testing.T) {
	c := New()

	c.SetBackendUp(true)
	if v := getGaugeValue(c.backendUp); v != 1 {
		t.Errorf("expected up=1, got %v", v)
	}

	c.SetBackendUp(false)
	if v := getGaugeValue(c.backendUp); v != 0 {
		t.Errorf("expected up=0, got %v", v)
	}
}

func TestUpdateTenantUsageReplacesSnapshot(t *testing.T) {
	c := New()

	c.UpdateTenantUsage([]TenantUsage{
		{TenantID: 1, Slug: "alpha", UserCount: 3, DeviceCount: 5},
		{TenantID: 2, Slug: "beta", UserCount: 1, DeviceCount: 0},
	})

	if v := getGaugeValue(c.tenantUsers.WithLabelValues("1", "alpha")); v != 3 {
		t.Errorf("expected alpha users=3, got %v", v)
	}
	if v := getGaugeValue(c.tenantDevices.WithLabelValues("1", "alpha")); v != 5 {
		t.Errorf("expected alpha devices=5, got %v", v)
	}

	c.UpdateTenantUsage([]TenantUsage{{TenantID: 1, Slug: "alpha", UserCount: 4}})

	families, err := c.Registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range families {
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "slug" && l.GetValue() == "beta" {
					t.Errorf("metric %s still has beta label after replacement", f.GetName())
				}
			}
		}
	}
}

func TestCountRequestSkipsLatency(t *testing.T) {
	c := New()

	c.CountRequest("update_tenant_limits", "unavailable")
	c.ObserveRequest("fetch_admin_stats", "ok", 100*time.Millisecond)

	if v := getCounterValue(c.upstreamRequests.WithLabelValues("update_tenant_limits", "unavailable")); v != 1 {
		t.Errorf("expected unavailable=1, got %v", v)
	}

	families, err := c.Registry.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() != "wws_console_upstream_request_duration_seconds" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "operation" && l.GetValue() == "update_tenant_limits" {
					t.Errorf("expected no latency sample for update_tenant_limits, got %d", m.GetHistogram().GetSampleCount())
				}
			}
		}
	}
}
