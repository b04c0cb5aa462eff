package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/wws/adminconsole/internal/adminclient"
	"github.com/wws/adminconsole/internal/config"
	"github.com/wws/adminconsole/internal/console"
	"github.com/wws/adminconsole/internal/health"
	"github.com/wws/adminconsole/internal/metrics"
)

// stubAPI is an in-memory admin backend.
type stubAPI struct {
	mu              sync.Mutex
	stats           *adminclient.AdminStats
	statsErr        error
	createTenantErr error
	devicesOutcome  adminclient.Outcome
	devices         []adminclient.ActiveDevice
	pingErr         error

	createdTenants []adminclient.NewTenant
	createdUsers   []adminclient.NewUser
	removed        []string
	limits         []adminclient.Limits
}

func (a *stubAPI) FetchAdminStats(ctx context.Context) (*adminclient.AdminStats, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.statsErr != nil {
		return nil, a.statsErr
	}
	s := *a.stats
	return &s, nil
}

func (a *stubAPI) CreateTenant(ctx context.Context, t adminclient.NewTenant) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.createTenantErr != nil {
		return a.createTenantErr
	}
	a.createdTenants = append(a.createdTenants, t)
	return nil
}

func (a *stubAPI) CreateTenantUser(ctx context.Context, tenantID int64, u adminclient.NewUser) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.createdUsers = append(a.createdUsers, u)
	return nil
}

func (a *stubAPI) ListActiveDevices(ctx context.Context, tenantID int64) ([]adminclient.ActiveDevice, adminclient.Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.devicesOutcome == adminclient.OutcomeUnavailable {
		return []adminclient.ActiveDevice{}, adminclient.OutcomeUnavailable, nil
	}
	return a.devices, adminclient.OutcomeApplied, nil
}

func (a *stubAPI) RemoveActiveDevice(ctx context.Context, tenantID int64, deviceID string) (adminclient.Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removed = append(a.removed, deviceID)
	return adminclient.OutcomeApplied, nil
}

func (a *stubAPI) UpdateTenantLimits(ctx context.Context, tenantID int64, limits adminclient.Limits) (adminclient.Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.limits = append(a.limits, limits)
	return adminclient.OutcomeApplied, nil
}

func (a *stubAPI) FetchTeamMembers(ctx context.Context) ([]adminclient.TeamMember, error) {
	return []adminclient.TeamMember{{"username": "root", "email": "root@wws.example", "role": "SUPER_ADMIN"}}, nil
}

func (a *stubAPI) Ping(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pingErr
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		stats: &adminclient.AdminStats{
			TotalTenants: 2,
			TotalUsers:   11,
			Tenants: []adminclient.Tenant{
				{ID: 1, Name: "Autohaus Nord", Slug: "autohaus-nord", UserCount: 9, MaxUsers: 10, DeviceCount: 1, MaxDevices: 4, IsActive: true, PaymentStatus: "paid", OnboardingStatus: "completed"},
				{ID: 2, Name: "Garage Sud", Slug: "garage-sud", UserCount: 2, MaxUsers: 5, DeviceCount: 0, MaxDevices: 2, IsActive: true},
			},
		},
		devices: []adminclient.ActiveDevice{
			{DeviceID: "tablet-1", LastSeen: "2026-03-01T10:00:00Z", User: "anna"},
		},
	}
}

func newTestServer(t *testing.T, api *stubAPI, lc config.ListenConfig) (*Server, http.Handler) {
	t.Helper()
	c := console.New(api)
	hc := health.NewChecker(api, nil, config.HealthCheckConfig{FailureThreshold: 1})
	s := NewServer(c, hc, metrics.New(), lc, config.DisplayConfig{LimitWarningPercent: 80})
	return s, s.Handler()
}

func loaded(t *testing.T, api *stubAPI, lc config.ListenConfig) (*Server, http.Handler) {
	t.Helper()
	s, h := newTestServer(t, api, lc)
	if err := s.console.LoadStats(context.Background()); err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	return s, h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func expectRedirect(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestDashboardRendersTenants(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{})

	rr := get(h, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()

	for _, want := range []string{
		"Autohaus Nord",
		"garage-sud",
		"Onboarding complete",
		"Paid",
		"Trial",
		"Waiting",
		"width:90%",
		"bar-fill critical",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected dashboard to contain %q", want)
		}
	}
	if strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("loaded dashboard should not auto-refresh")
	}
}

func TestDashboardSkeletonBeforeFirstLoad(t *testing.T) {
	_, h := newTestServer(t, newStubAPI(), config.ListenConfig{})

	body := get(h, "/dashboard").Body.String()
	if !strings.Contains(body, "summary skeleton") {
		t.Error("expected skeleton before the first load")
	}
	if !strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("expected skeleton page to auto-refresh")
	}
}

func TestCreateTenantAction(t *testing.T) {
	api := newStubAPI()
	s, h := loaded(t, api, config.ListenConfig{})
	s.console.OpenTenantModal()

	rr := postForm(h, "/actions/tenants", url.Values{
		"name":     {"Autohaus West"},
		"email":    {"west@example.com"},
		"password": {console.DefaultTenantPassword},
	})
	expectRedirect(t, rr)

	if len(api.createdTenants) != 1 || api.createdTenants[0].Name != "Autohaus West" {
		t.Fatalf("expected tenant to be created, got %+v", api.createdTenants)
	}

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "Dealer created successfully") {
		t.Error("expected success toast")
	}
	if strings.Contains(body, `action="/actions/tenants"`) {
		t.Error("expected tenant modal to be closed")
	}
}

func TestCreateTenantFailureKeepsForm(t *testing.T) {
	api := newStubAPI()
	api.createTenantErr = &adminclient.APIError{StatusCode: http.StatusConflict, Status: "Conflict"}
	s, h := loaded(t, api, config.ListenConfig{})
	s.console.OpenTenantModal()

	expectRedirect(t, postForm(h, "/actions/tenants", url.Values{
		"name":  {"Autohaus West"},
		"email": {"west@example.com"},
	}))

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "API Error: Conflict") {
		t.Error("expected error toast with backend status")
	}
	if !strings.Contains(body, `value="Autohaus West"`) {
		t.Error("expected entered name to be preserved")
	}

	// Toasts are shown once.
	if strings.Contains(get(h, "/").Body.String(), "API Error: Conflict") {
		t.Error("expected notice to be consumed by the first render")
	}
}

func TestDeviceDrawer(t *testing.T) {
	api := newStubAPI()
	_, h := loaded(t, api, config.ListenConfig{})

	expectRedirect(t, postForm(h, "/actions/devices", url.Values{"tenant_id": {"1"}}))

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "tablet-1") {
		t.Error("expected device to be listed")
	}

	expectRedirect(t, postForm(h, "/actions/devices/remove", url.Values{
		"tenant_id": {"1"},
		"device_id": {"tablet-1"},
	}))
	if len(api.removed) != 1 || api.removed[0] != "tablet-1" {
		t.Errorf("expected tablet-1 removed, got %v", api.removed)
	}
}

func TestDeviceDrawerUnavailable(t *testing.T) {
	api := newStubAPI()
	api.devicesOutcome = adminclient.OutcomeUnavailable
	_, h := loaded(t, api, config.ListenConfig{})

	expectRedirect(t, postForm(h, "/actions/devices", url.Values{"tenant_id": {"2"}}))

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "Device management is not available yet.") {
		t.Error("expected unavailable notice in drawer")
	}
}

func TestCreateUserAction(t *testing.T) {
	api := newStubAPI()
	_, h := loaded(t, api, config.ListenConfig{})

	expectRedirect(t, postForm(h, "/actions/user-modal", url.Values{"tenant_id": {"2"}}))
	expectRedirect(t, postForm(h, "/actions/users", url.Values{
		"email":    {"chef@garage.example"},
		"username": {"chef"},
		"password": {"pw"},
	}))

	if len(api.createdUsers) != 1 {
		t.Fatalf("expected one user created, got %d", len(api.createdUsers))
	}
	if api.createdUsers[0].Role != adminclient.RoleTenantAdmin {
		t.Errorf("expected role %s, got %s", adminclient.RoleTenantAdmin, api.createdUsers[0].Role)
	}
}

func TestUpdateLimitsAction(t *testing.T) {
	api := newStubAPI()
	_, h := loaded(t, api, config.ListenConfig{})

	expectRedirect(t, postForm(h, "/actions/limits", url.Values{"tenant_id": {"1"}, "max_users": {"12"}}))

	if len(api.limits) != 1 {
		t.Fatalf("expected one limits update, got %d", len(api.limits))
	}
	if got := api.limits[0]; got.MaxUsers != 12 || got.MaxDevices != 4 {
		t.Errorf("expected {12 4}, got %+v", got)
	}
}

func TestActionBadInput(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{})

	tests := []struct {
		path string
		form url.Values
	}{
		{"/actions/devices", url.Values{"tenant_id": {"abc"}}},
		{"/actions/devices", url.Values{"tenant_id": {"0"}}},
		{"/actions/devices/remove", url.Values{"tenant_id": {"1"}}},
		{"/actions/limits", url.Values{"tenant_id": {"1"}, "max_users": {"many"}}},
		{"/actions/tab", url.Values{"tab": {"billing"}}},
	}
	for _, tt := range tests {
		rr := postForm(h, tt.path, tt.form)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s %v: expected 400, got %d", tt.path, tt.form, rr.Code)
		}
	}
}

func TestTabAndSidebarActions(t *testing.T) {
	s, h := loaded(t, newStubAPI(), config.ListenConfig{})

	expectRedirect(t, postForm(h, "/actions/tab", url.Values{"tab": {"settings"}}))
	expectRedirect(t, postForm(h, "/actions/sidebar", nil))

	v := s.console.Snapshot()
	if v.Tab != console.TabSettings {
		t.Errorf("expected settings tab, got %s", v.Tab)
	}
	if v.SidebarOpen {
		t.Error("expected sidebar closed")
	}

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "root@wws.example") {
		t.Error("expected team member on settings tab")
	}
	if !strings.Contains(body, "sidebar-closed") {
		t.Error("expected closed sidebar class")
	}
}

func TestStateEndpoint(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{})
	expectRedirect(t, postForm(h, "/actions/devices", url.Values{"tenant_id": {"1"}}))

	rr := get(h, "/state")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var state stateResponse
	if err := json.NewDecoder(rr.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Stats == nil || state.Stats.TotalTenants != 2 {
		t.Errorf("expected stats with 2 tenants, got %+v", state.Stats)
	}
	if state.Overlay.Kind != "device-drawer" || state.Overlay.TenantID != 1 {
		t.Errorf("expected device drawer for tenant 1, got %+v", state.Overlay)
	}
	if state.Loading {
		t.Error("expected loading false after first load")
	}
}

func TestHealthAndReady(t *testing.T) {
	api := newStubAPI()
	_, h := newTestServer(t, api, config.ListenConfig{AccessKey: "k"})

	if rr := get(h, "/health"); rr.Code != http.StatusOK {
		t.Errorf("expected health 200, got %d", rr.Code)
	}
	if rr := get(h, "/ready"); rr.Code != http.StatusOK {
		t.Errorf("expected ready 200, got %d", rr.Code)
	}

	api.pingErr = errors.New("connection refused")
	rr := get(h, "/ready")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected ready 503, got %d", rr.Code)
	}
	var body map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["status"] != "not_ready" {
		t.Errorf("expected not_ready, got %v", body["status"])
	}
}

func TestStatusReportsBackendHealth(t *testing.T) {
	api := newStubAPI()
	_, h := newTestServer(t, api, config.ListenConfig{})

	var body map[string]interface{}
	rr := get(h, "/status")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["backend_healthy"] != true {
		t.Errorf("expected backend_healthy true before any check, got %v", body["backend_healthy"])
	}

	api.pingErr = errors.New("connection refused")
	get(h, "/ready")

	body = nil
	rr = get(h, "/status")
	json.NewDecoder(rr.Body).Decode(&body)
	if body["backend_healthy"] != false {
		t.Errorf("expected backend_healthy false after failed check, got %v", body["backend_healthy"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{AccessKey: "k"})

	rr := get(h, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{AccessKey: "console-key"})

	rr := get(h, "/")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected basic auth challenge")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "console-key")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 with basic auth, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Authorization", "Bearer console-key")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 with bearer key, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", rr.Code)
	}
}

func TestAuthMiddlewareHashedKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("console-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing key: %v", err)
	}
	_, h := loaded(t, newStubAPI(), config.ListenConfig{AccessKeyHash: string(hash)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("", "console-key")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 with hashed key, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("", "nope")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", rr.Code)
	}
}

func TestCrossOriginPostRejected(t *testing.T) {
	api := newStubAPI()
	_, h := loaded(t, api, config.ListenConfig{})

	req := httptest.NewRequest(http.MethodPost, "/actions/limits",
		strings.NewReader("tenant_id=1&max_users=50"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
	if len(api.limits) != 0 {
		t.Error("expected no limits update")
	}
}

func TestSecurityHeaders(t *testing.T) {
	_, h := loaded(t, newStubAPI(), config.ListenConfig{})

	rr := get(h, "/")
	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rr.Header().Get(header) == "" {
			t.Errorf("expected %s header", header)
		}
	}
}

func TestSetDisplayReloadsLabels(t *testing.T) {
	s, h := loaded(t, newStubAPI(), config.ListenConfig{})

	s.SetDisplay(config.DisplayConfig{
		LimitWarningPercent: 95,
		StatusLabels:        map[string]string{"paid": "Settled"},
	})

	body := get(h, "/").Body.String()
	if !strings.Contains(body, "Settled") {
		t.Error("expected overridden payment label")
	}
	if strings.Contains(body, "bar-fill critical") {
		t.Error("expected 90% usage to be below the 95% threshold")
	}
}
