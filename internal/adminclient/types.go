package adminclient

// RoleTenantAdmin is the role given to users provisioned from the console.
const RoleTenantAdmin = "TENANT_ADMIN"

// AdminStats is an aggregate snapshot of the platform. It is rebuilt on every
// fetch and never merged with an earlier snapshot.
type AdminStats struct {
	TotalTenants int      `json:"total_tenants"`
	TotalUsers   int      `json:"total_users"`
	TotalDevices int      `json:"total_devices"`
	Tenants      []Tenant `json:"tenants"`
}

// Tenant is a dealer account as reported by the backend. Counts may exceed
// their limits; the client does not enforce quotas.
type Tenant struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Name        string `json:"name"`
	Slug        string `json:"slug" validate:"required"`
	UserCount   int    `json:"user_count" validate:"gte=0"`
	MaxUsers    int    `json:"max_users" validate:"gte=0"`
	DeviceCount int    `json:"device_count" validate:"gte=0"`
	MaxDevices  int    `json:"max_devices" validate:"gte=0"`
	IsActive    bool   `json:"is_active"`

	// Presentation-only fields. Values are opaque and not enumerated here.
	OnboardingStatus string `json:"onboarding_status,omitempty"`
	PaymentStatus    string `json:"payment_status,omitempty"`
	LogoURL          string `json:"logo_url,omitempty"`
}

// ActiveDevice is an authenticated session of one tenant. DeviceID is the
// device fingerprint and is what removal is addressed by; ID is only the
// record identifier of the listing.
type ActiveDevice struct {
	ID       string `json:"id"`
	DeviceID string `json:"device_id" validate:"required"`
	User     string `json:"user"`
	LastSeen string `json:"last_seen" validate:"required,iso8601"`
	IP       string `json:"ip" validate:"omitempty,ip"`
}

// KPIs is the subset of the backend KPI summary the console reads.
type KPIs struct {
	Team struct {
		ActiveUsers *int `json:"activeUsers" validate:"required,gte=0"`
	} `json:"team"`
}

// NewTenant is the tenant creation payload.
type NewTenant struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty"`
	Website        string `json:"website,omitempty"`
	Password       string `json:"password,omitempty"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
	LogoURL        string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// NewUser is a user to provision inside a tenant. Role is free-form.
type NewUser struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Limits carries both quotas. Updates always send both values.
type Limits struct {
	MaxUsers   int `json:"max_users" validate:"gte=0"`
	MaxDevices int `json:"max_devices" validate:"gte=0"`
}

// TeamMember is an untyped user record from the admin user listing.
type TeamMember map[string]any

type newUserRequest struct {
	NewUser
	TenantID int64 `json:"tenant_id"`
}
