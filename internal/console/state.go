package console

import (
	"fmt"
	"time"

	"github.com/wws/adminconsole/internal/adminclient"
)

// Tab is one of the fixed dashboard sections.
type Tab string

const (
	TabOverview Tab = "overview"
	TabTenants  Tab = "tenants"
	TabSettings Tab = "settings"
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(s); t {
	case TabOverview, TabTenants, TabSettings:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

// OverlayKind enumerates what can be drawn over the dashboard.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayDeviceDrawer
	OverlayTenantModal
	OverlayUserModal
)

func (k OverlayKind) String() string {
	switch k {
	case OverlayDeviceDrawer:
		return "device-drawer"
	case OverlayTenantModal:
		return "tenant-modal"
	case OverlayUserModal:
		return "user-modal"
	default:
		return "none"
	}
}

// Overlay is the single modal or drawer currently shown. Only one exists at
// a time; opening another replaces it. The device drawer and the user modal
// always carry the tenant they belong to.
type Overlay struct {
	kind   OverlayKind
	tenant adminclient.Tenant
}

// NoOverlay is the plain dashboard.
func NoOverlay() Overlay { return Overlay{} }

// DeviceDrawer shows the active devices of t.
func DeviceDrawer(t adminclient.Tenant) Overlay {
	return Overlay{kind: OverlayDeviceDrawer, tenant: t}
}

// TenantModal is the tenant creation form.
func TenantModal() Overlay { return Overlay{kind: OverlayTenantModal} }

// UserModal is the user creation form for t.
func UserModal(t adminclient.Tenant) Overlay {
	return Overlay{kind: OverlayUserModal, tenant: t}
}

// Kind returns which overlay is shown.
func (o Overlay) Kind() OverlayKind { return o.kind }

// Tenant returns the tenant the overlay belongs to, if any.
func (o Overlay) Tenant() (adminclient.Tenant, bool) {
	if o.kind == OverlayDeviceDrawer || o.kind == OverlayUserModal {
		return o.tenant, true
	}
	return adminclient.Tenant{}, false
}

// DefaultTenantPassword prefills the initial password of new tenants.
const DefaultTenantPassword = "Start123!"

// TenantForm holds the uncommitted tenant creation fields.
type TenantForm struct {
	Name           string
	Email          string
	Phone          string
	Website        string
	Password       string
	WhatsAppNumber string
	LogoURL        string
}

// NewTenantForm returns the form in its initial state.
func NewTenantForm() TenantForm {
	return TenantForm{Password: DefaultTenantPassword}
}

func (f TenantForm) payload() adminclient.NewTenant {
	return adminclient.NewTenant{
		Name:           f.Name,
		Email:          f.Email,
		Phone:          f.Phone,
		Website:        f.Website,
		Password:       f.Password,
		WhatsAppNumber: f.WhatsAppNumber,
		LogoURL:        f.LogoURL,
	}
}

// UserForm holds the uncommitted user creation fields.
type UserForm struct {
	Email    string
	Username string
	Password string
}

// NoticeKind classifies a transient notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a toast shown once on the next render.
type Notice struct {
	Kind    NoticeKind
	Message string
	At      time.Time
}

// View is a copy of the console state taken under lock. Mutating it has no
// effect on the controller.
type View struct {
	Stats            *adminclient.AdminStats
	Loading          bool
	SelectedTenant   *adminclient.Tenant
	ActiveDevices    []adminclient.ActiveDevice
	DevicesAvailable bool
	Team             []adminclient.TeamMember
	Tab              Tab
	SidebarOpen      bool
	Overlay          Overlay
	TenantForm       TenantForm
	UserForm         UserForm
}
