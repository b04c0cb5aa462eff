// Package console drives the admin dashboard: it owns all transient UI state
// and sequences admin backend calls in response to operator actions.
package console

//go:generate mockgen -source=console.go -destination=mocks/mocks.go -package=mocks API

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wws/adminconsole/internal/adminclient"
)

// Notification texts.
const (
	msgStatsFailed        = "Failed to load statistics"
	msgDevicesFailed      = "Devices could not be loaded"
	msgDeviceRemoved      = "Device signed out"
	msgDeviceRemoveFailed = "Failed to sign out device"
	msgDevicesUnavailable = "Device management is not available yet"
	msgTenantCreated      = "Dealer created successfully"
	msgUserCreated        = "User created"
	msgCreateFailed       = "Failed to create"
	msgInvalidInput       = "Please check the entered data"
	msgLimitsUpdated      = "Limits updated"
	msgLimitsFailed       = "Failed to update limits"
	msgLimitsUnavailable  = "Limit updates are not available yet"
	msgTeamFailed         = "Failed to load team members"
	msgUnknownTenant      = "Unknown dealer"
)

// ErrUnknownTenant is returned when an action names a tenant that is not in
// the last loaded stats.
var ErrUnknownTenant = errors.New("unknown tenant")

// API is the part of the admin client the console uses.
type API interface {
	FetchAdminStats(ctx context.Context) (*adminclient.AdminStats, error)
	CreateTenant(ctx context.Context, t adminclient.NewTenant) error
	CreateTenantUser(ctx context.Context, tenantID int64, u adminclient.NewUser) error
	ListActiveDevices(ctx context.Context, tenantID int64) ([]adminclient.ActiveDevice, adminclient.Outcome, error)
	RemoveActiveDevice(ctx context.Context, tenantID int64, deviceID string) (adminclient.Outcome, error)
	UpdateTenantLimits(ctx context.Context, tenantID int64, limits adminclient.Limits) (adminclient.Outcome, error)
	FetchTeamMembers(ctx context.Context) ([]adminclient.TeamMember, error)
}

// ActionRecorder counts operator actions by result.
type ActionRecorder interface {
	ConsoleAction(action, result string)
}

type nopRecorder struct{}

func (nopRecorder) ConsoleAction(string, string) {}

// Controller owns the state of one dashboard. Backend calls are made without
// holding the lock; results replace state wholesale when they arrive.
type Controller struct {
	api      API
	recorder ActionRecorder
	now      func() time.Time

	onStatsLoaded func(*adminclient.AdminStats)

	mu               sync.Mutex
	stats            *adminclient.AdminStats
	loading          bool
	selectedTenant   *adminclient.Tenant
	activeDevices    []adminclient.ActiveDevice
	devicesAvailable bool
	team             []adminclient.TeamMember
	tab              Tab
	sidebarOpen      bool
	overlay          Overlay
	tenantForm       TenantForm
	userForm         UserForm
	notices          []Notice
}

// Option configures a Controller.
type Option func(*Controller)

// WithActionRecorder reports every action result to r.
func WithActionRecorder(r ActionRecorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithClock overrides the notice timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithStatsHook calls fn after every successful stats load.
func WithStatsHook(fn func(*adminclient.AdminStats)) Option {
	return func(c *Controller) {
		c.onStatsLoaded = fn
	}
}

// New creates a controller in its initial state: overview tab, sidebar open,
// nothing loaded yet.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:              api,
		recorder:         nopRecorder{},
		now:              time.Now,
		loading:          true,
		devicesAvailable: true,
		activeDevices:    []adminclient.ActiveDevice{},
		tab:              TabOverview,
		sidebarOpen:      true,
		overlay:          NoOverlay(),
		tenantForm:       NewTenantForm(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadStats fetches a fresh stats snapshot and replaces the previous one. On
// failure the previous snapshot stays. Only the very first load is reported
// as loading.
func (c *Controller) LoadStats(ctx context.Context) error {
	stats, err := c.api.FetchAdminStats(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.notifyLocked(NoticeError, msgStatsFailed)
		c.mu.Unlock()
		slog.Warn("loading admin stats failed", "err", err)
		c.recorder.ConsoleAction("load_stats", "failure")
		return err
	}
	c.stats = stats
	hook := c.onStatsLoaded
	c.mu.Unlock()

	if hook != nil {
		hook(stats)
	}
	c.recorder.ConsoleAction("load_stats", "success")
	return nil
}

// SelectTenantForDevices opens the device drawer for a tenant and loads its
// devices. On failure the previous device list stays.
func (c *Controller) SelectTenantForDevices(ctx context.Context, tenantID int64) error {
	t, err := c.lookupTenant(tenantID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.selectedTenant = &t
	c.overlay = DeviceDrawer(t)
	c.mu.Unlock()

	return c.loadDevices(ctx, t.ID)
}

func (c *Controller) loadDevices(ctx context.Context, tenantID int64) error {
	devices, outcome, err := c.api.ListActiveDevices(ctx, tenantID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.notifyLocked(NoticeError, msgDevicesFailed)
		slog.Warn("loading active devices failed", "tenant", tenantID, "err", err)
		c.recorder.ConsoleAction("load_devices", "failure")
		return err
	}
	// A later selection wins over a slow response for an earlier tenant.
	if c.selectedTenant == nil || c.selectedTenant.ID != tenantID {
		return nil
	}
	c.activeDevices = devices
	c.devicesAvailable = outcome.Available()
	c.recorder.ConsoleAction("load_devices", outcome.String())
	return nil
}

// RemoveDevice signs a device out and refreshes the device list and stats.
// When the backend has no device route the refresh still runs.
func (c *Controller) RemoveDevice(ctx context.Context, tenantID int64, deviceID string) error {
	outcome, err := c.api.RemoveActiveDevice(ctx, tenantID, deviceID)
	if err != nil {
		c.notify(NoticeError, msgDeviceRemoveFailed)
		slog.Warn("removing device failed", "tenant", tenantID, "device", deviceID, "err", err)
		c.recorder.ConsoleAction("remove_device", "failure")
		return err
	}

	if outcome == adminclient.OutcomeUnavailable {
		c.notify(NoticeInfo, msgDevicesUnavailable)
	} else {
		c.notify(NoticeSuccess, msgDeviceRemoved)
		slog.Info("device signed out", "tenant", tenantID, "device", deviceID)
	}
	c.recorder.ConsoleAction("remove_device", outcome.String())

	c.SelectTenantForDevices(ctx, tenantID)
	c.LoadStats(ctx)
	return nil
}

// CreateTenant submits the tenant form. On success the modal closes, the
// form returns to its defaults and stats reload; on failure both stay as they were.
func (c *Controller) CreateTenant(ctx context.Context) error {
	c.mu.Lock()
	form := c.tenantForm
	c.mu.Unlock()

	if err := c.api.CreateTenant(ctx, form.payload()); err != nil {
		c.notify(NoticeError, failureText(err))
		slog.Warn("creating tenant failed", "name", form.Name, "err", err)
		c.recorder.ConsoleAction("create_tenant", "failure")
		return err
	}

	c.mu.Lock()
	c.notifyLocked(NoticeSuccess, msgTenantCreated)
	if c.overlay.Kind() == OverlayTenantModal {
		c.overlay = NoOverlay()
	}
	c.tenantForm = NewTenantForm()
	c.mu.Unlock()

	slog.Info("tenant created", "name", form.Name, "email", form.Email)
	c.recorder.ConsoleAction("create_tenant", "success")

	c.LoadStats(ctx)
	return nil
}

// CreateUser submits the user form for the selected tenant with the tenant
// admin role. Without a selected tenant it does nothing.
func (c *Controller) CreateUser(ctx context.Context) error {
	c.mu.Lock()
	if c.selectedTenant == nil {
		c.mu.Unlock()
		return nil
	}
	tenantID := c.selectedTenant.ID
	form := c.userForm
	c.mu.Unlock()

	err := c.api.CreateTenantUser(ctx, tenantID, adminclient.NewUser{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
		Role:     adminclient.RoleTenantAdmin,
	})
	if err != nil {
		c.notify(NoticeError, failureText(err))
		slog.Warn("creating tenant user failed", "tenant", tenantID, "username", form.Username, "err", err)
		c.recorder.ConsoleAction("create_user", "failure")
		return err
	}

	c.mu.Lock()
	c.notifyLocked(NoticeSuccess, msgUserCreated)
	if c.overlay.Kind() == OverlayUserModal {
		c.overlay = NoOverlay()
	}
	c.userForm = UserForm{}
	c.mu.Unlock()

	slog.Info("tenant user created", "tenant", tenantID, "username", form.Username)
	c.recorder.ConsoleAction("create_user", "success")

	c.LoadStats(ctx)
	return nil
}

// UpdateUserLimit sets a new user limit for a tenant, keeping its current
// device limit. Both values are sent.
func (c *Controller) UpdateUserLimit(ctx context.Context, tenantID int64, maxUsers int) error {
	t, err := c.lookupTenant(tenantID)
	if err != nil {
		return err
	}
	return c.UpdateLimits(ctx, tenantID, adminclient.Limits{MaxUsers: maxUsers, MaxDevices: t.MaxDevices})
}

// UpdateLimits replaces both quotas of a tenant and reloads stats. When the
// backend has no limits route the reload still runs.
func (c *Controller) UpdateLimits(ctx context.Context, tenantID int64, limits adminclient.Limits) error {
	outcome, err := c.api.UpdateTenantLimits(ctx, tenantID, limits)
	if err != nil {
		c.notify(NoticeError, msgLimitsFailed)
		slog.Warn("updating tenant limits failed", "tenant", tenantID, "err", err)
		c.recorder.ConsoleAction("update_limits", "failure")
		return err
	}

	c.recorder.ConsoleAction("update_limits", outcome.String())
	if outcome == adminclient.OutcomeUnavailable {
		c.notify(NoticeInfo, msgLimitsUnavailable)
	} else {
		c.notify(NoticeSuccess, msgLimitsUpdated)
		slog.Info("tenant limits updated", "tenant", tenantID,
			"max_users", limits.MaxUsers, "max_devices", limits.MaxDevices)
	}

	c.LoadStats(ctx)
	return nil
}

// LoadTeam fetches the admin user listing shown on the settings tab.
func (c *Controller) LoadTeam(ctx context.Context) error {
	team, err := c.api.FetchTeamMembers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.notifyLocked(NoticeError, msgTeamFailed)
		slog.Warn("loading team members failed", "err", err)
		c.recorder.ConsoleAction("load_team", "failure")
		return err
	}
	c.team = team
	c.recorder.ConsoleAction("load_team", "success")
	return nil
}

// SetTab switches the dashboard section and refreshes the data it shows.
func (c *Controller) SetTab(ctx context.Context, tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}

	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()

	if tab == TabSettings {
		return c.LoadTeam(ctx)
	}
	return c.LoadStats(ctx)
}

// ToggleSidebar flips sidebar visibility.
func (c *Controller) ToggleSidebar() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sidebarOpen = !c.sidebarOpen
}

// OpenTenantModal shows the tenant creation form.
func (c *Controller) OpenTenantModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlay = TenantModal()
}

// OpenUserModal selects a tenant and shows the user creation form for it.
func (c *Controller) OpenUserModal(tenantID int64) error {
	t, err := c.lookupTenant(tenantID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedTenant = &t
	c.overlay = UserModal(t)
	return nil
}

// CloseOverlay returns to the plain dashboard and clears the selection.
func (c *Controller) CloseOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlay = NoOverlay()
	c.selectedTenant = nil
}

// SetTenantForm replaces the uncommitted tenant form fields.
func (c *Controller) SetTenantForm(f TenantForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tenantForm = f
}

// SetUserForm replaces the uncommitted user form fields.
func (c *Controller) SetUserForm(f UserForm) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userForm = f
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Loading:          c.loading,
		ActiveDevices:    append([]adminclient.ActiveDevice{}, c.activeDevices...),
		DevicesAvailable: c.devicesAvailable,
		Team:             append([]adminclient.TeamMember(nil), c.team...),
		Tab:              c.tab,
		SidebarOpen:      c.sidebarOpen,
		Overlay:          c.overlay,
		TenantForm:       c.tenantForm,
		UserForm:         c.userForm,
	}
	if c.stats != nil {
		s := *c.stats
		s.Tenants = append([]adminclient.Tenant(nil), c.stats.Tenants...)
		v.Stats = &s
	}
	if c.selectedTenant != nil {
		t := *c.selectedTenant
		v.SelectedTenant = &t
	}
	return v
}

// DrainNotices returns pending notices and clears them.
func (c *Controller) DrainNotices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.notices
	c.notices = nil
	return n
}

func (c *Controller) lookupTenant(tenantID int64) (adminclient.Tenant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stats != nil {
		for _, t := range c.stats.Tenants {
			if t.ID == tenantID {
				return t, nil
			}
		}
	}
	c.notifyLocked(NoticeError, msgUnknownTenant)
	return adminclient.Tenant{}, ErrUnknownTenant
}

func (c *Controller) notify(kind NoticeKind, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyLocked(kind, msg)
}

func (c *Controller) notifyLocked(kind NoticeKind, msg string) {
	c.notices = append(c.notices, Notice{Kind: kind, Message: msg, At: c.now()})
}

// failureText is the message shown for a failed create. Validation errors
// get a fixed text; other errors show their own message.
func failureText(err error) string {
	if errors.Is(err, adminclient.ErrInvalidInput) {
		return msgInvalidInput
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgCreateFailed
}
