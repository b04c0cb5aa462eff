package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"github.com/wws/adminconsole/internal/adminclient"
	"github.com/wws/adminconsole/internal/config"
	"github.com/wws/adminconsole/internal/console"
	"github.com/wws/adminconsole/internal/display"
	"github.com/wws/adminconsole/internal/health"
	"github.com/wws/adminconsole/internal/metrics"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const authRealm = `Basic realm="wws admin console"`

// displaySettings is swapped as a whole when the display config reloads.
type displaySettings struct {
	threshold float64
	labeler   *display.Labeler
}

func newDisplaySettings(dc config.DisplayConfig) *displaySettings {
	threshold := dc.LimitWarningPercent
	if threshold == 0 {
		threshold = display.DefaultWarningPercent
	}
	return &displaySettings{
		threshold: threshold,
		labeler:   display.NewLabeler(dc.StatusLabels),
	}
}

// Server serves the admin dashboard, its form actions, and the
// health/readiness/metrics endpoints.
type Server struct {
	console     *console.Controller
	healthCheck *health.Checker
	metrics     *metrics.Collector
	httpServer  *http.Server
	startTime   time.Time
	listenCfg   config.ListenConfig
	display     atomic.Pointer[displaySettings]
}

// NewServer creates a new console server.
func NewServer(c *console.Controller, hc *health.Checker, m *metrics.Collector, lc config.ListenConfig, dc config.DisplayConfig) *Server {
	s := &Server{
		console:     c,
		healthCheck: hc,
		metrics:     m,
		startTime:   time.Now(),
		listenCfg:   lc,
	}
	s.display.Store(newDisplaySettings(dc))
	return s
}

// SetDisplay applies reloaded display settings to subsequent renders.
func (s *Server) SetDisplay(dc config.DisplayConfig) {
	s.display.Store(newDisplaySettings(dc))
}

// authMiddleware returns a middleware that checks the console access key,
// sent either as a Bearer token or as the password of HTTP basic auth.
// Unauthenticated routes (health, ready, metrics) are excluded.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/health" || path == "/ready" || path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		if !s.listenCfg.AuthEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		if !s.checkAccessKey(presentedKey(r)) {
			w.Header().Set("WWW-Authenticate", authRealm)
			writeError(w, http.StatusUnauthorized, "unauthorized: invalid or missing access key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func presentedKey(r *http.Request) string {
	if _, pass, ok := r.BasicAuth(); ok {
		return pass
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func (s *Server) checkAccessKey(key string) bool {
	if key == "" {
		return false
	}
	if s.listenCfg.AccessKeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.listenCfg.AccessKeyHash), []byte(key)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.listenCfg.AccessKey)) == 1
}

// sameOrigin rejects form posts whose Origin names another host. Browsers
// attach basic auth credentials to cross-site posts.
func (s *Server) sameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if origin := r.Header.Get("Origin"); origin != "" {
				u, err := url.Parse(origin)
				if err != nil || u.Host != r.Host {
					writeError(w, http.StatusForbidden, "cross-origin request rejected")
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Handler builds the full middleware-wrapped route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	// Dashboard actions. Each one redirects back to the dashboard.
	actions := r.PathPrefix("/actions").Methods(http.MethodPost).Subrouter()
	actions.HandleFunc("/refresh", s.refresh)
	actions.HandleFunc("/tab", s.setTab)
	actions.HandleFunc("/sidebar", s.toggleSidebar)
	actions.HandleFunc("/tenant-modal", s.openTenantModal)
	actions.HandleFunc("/user-modal", s.openUserModal)
	actions.HandleFunc("/close", s.closeOverlay)
	actions.HandleFunc("/tenants", s.createTenant)
	actions.HandleFunc("/users", s.createUser)
	actions.HandleFunc("/devices", s.selectDevices)
	actions.HandleFunc("/devices/remove", s.removeDevice)
	actions.HandleFunc("/limits", s.updateLimits)

	// Machine-readable state
	r.HandleFunc("/state", s.stateHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", s.statusHandler).Methods(http.MethodGet)

	// Health & readiness
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.readyHandler).Methods(http.MethodGet)

	// Prometheus metrics
	if s.metrics != nil && s.metrics.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	} else {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.HandleFunc("/", s.dashboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.dashboardHandler).Methods(http.MethodGet)

	return s.securityHeaders(s.authMiddleware(s.sameOrigin(r)))
}

// Start starts the HTTP server in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.listenCfg.Bind, s.listenCfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if !s.listenCfg.AuthEnabled() {
		slog.Warn("console access key not configured, dashboard is unauthenticated")
	}
	slog.Info("admin console listening", "addr", addr, "tls", s.listenCfg.TLSEnabled())

	go func() {
		var err error
		if s.listenCfg.TLSEnabled() {
			err = s.httpServer.ListenAndServeTLS(s.listenCfg.TLSCert, s.listenCfg.TLSKey)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			slog.Error("console server error", "err", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// --- Action Handlers ---

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	s.console.LoadStats(r.Context())
	redirectHome(w, r)
}

func (s *Server) setTab(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	tab, err := console.ParseTab(r.PostFormValue("tab"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.console.SetTab(r.Context(), tab)
	redirectHome(w, r)
}

func (s *Server) toggleSidebar(w http.ResponseWriter, r *http.Request) {
	s.console.ToggleSidebar()
	redirectHome(w, r)
}

func (s *Server) openTenantModal(w http.ResponseWriter, r *http.Request) {
	s.console.OpenTenantModal()
	redirectHome(w, r)
}

func (s *Server) openUserModal(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantIDField(w, r)
	if !ok {
		return
	}
	s.console.OpenUserModal(id)
	redirectHome(w, r)
}

func (s *Server) closeOverlay(w http.ResponseWriter, r *http.Request) {
	s.console.CloseOverlay()
	redirectHome(w, r)
}

func (s *Server) createTenant(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	s.console.SetTenantForm(console.TenantForm{
		Name:           strings.TrimSpace(r.PostFormValue("name")),
		Email:          strings.TrimSpace(r.PostFormValue("email")),
		Phone:          strings.TrimSpace(r.PostFormValue("phone")),
		Website:        strings.TrimSpace(r.PostFormValue("website")),
		Password:       r.PostFormValue("password"),
		WhatsAppNumber: strings.TrimSpace(r.PostFormValue("whatsapp_number")),
		LogoURL:        strings.TrimSpace(r.PostFormValue("logo_url")),
	})
	s.console.CreateTenant(r.Context())
	redirectHome(w, r)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	s.console.SetUserForm(console.UserForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	})
	s.console.CreateUser(r.Context())
	redirectHome(w, r)
}

func (s *Server) selectDevices(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantIDField(w, r)
	if !ok {
		return
	}
	s.console.SelectTenantForDevices(r.Context(), id)
	redirectHome(w, r)
}

func (s *Server) removeDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantIDField(w, r)
	if !ok {
		return
	}
	deviceID := r.PostFormValue("device_id")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}
	s.console.RemoveDevice(r.Context(), id, deviceID)
	redirectHome(w, r)
}

func (s *Server) updateLimits(w http.ResponseWriter, r *http.Request) {
	id, ok := tenantIDField(w, r)
	if !ok {
		return
	}
	maxUsers, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("max_users")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "max_users must be a number")
		return
	}
	s.console.UpdateUserLimit(r.Context(), id, maxUsers)
	redirectHome(w, r)
}

// --- State Handlers ---

type overlayResponse struct {
	Kind     string `json:"kind"`
	TenantID int64  `json:"tenant_id,omitempty"`
}

type stateResponse struct {
	Stats            *adminclient.AdminStats    `json:"stats"`
	Loading          bool                       `json:"loading"`
	SelectedTenant   *adminclient.Tenant        `json:"selected_tenant"`
	ActiveDevices    []adminclient.ActiveDevice `json:"active_devices"`
	DevicesAvailable bool                       `json:"devices_available"`
	Tab              console.Tab                `json:"tab"`
	SidebarOpen      bool                       `json:"sidebar_open"`
	Overlay          overlayResponse            `json:"overlay"`
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	v := s.console.Snapshot()

	ov := overlayResponse{Kind: v.Overlay.Kind().String()}
	if t, ok := v.Overlay.Tenant(); ok {
		ov.TenantID = t.ID
	}

	writeJSON(w, http.StatusOK, stateResponse{
		Stats:            v.Stats,
		Loading:          v.Loading,
		SelectedTenant:   v.SelectedTenant,
		ActiveDevices:    v.ActiveDevices,
		DevicesAvailable: v.DevicesAvailable,
		Tab:              v.Tab,
		SidebarOpen:      v.SidebarOpen,
		Overlay:          ov,
	})
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime_seconds":  int(time.Since(s.startTime).Seconds()),
		"go_version":      runtime.Version(),
		"goroutines":      runtime.NumGoroutine(),
		"memory_mb":       float64(mem.Alloc) / 1024 / 1024,
		"backend":         s.healthCheck.GetStatus(),
		"backend_healthy": s.healthCheck.IsHealthy(),
	})
}

// --- Health Handlers ---

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	bh := s.healthCheck.Check(r.Context())
	if bh.Status != health.StatusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"backend": bh,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"backend": bh,
	})
}

// securityHeaders adds security-related HTTP headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; form-action 'self'")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// --- Helpers ---

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body: "+err.Error())
		return false
	}
	return true
}

func tenantIDField(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if !parseForm(w, r) {
		return 0, false
	}
	id, err := strconv.ParseInt(r.PostFormValue("tenant_id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "tenant_id must be a positive integer")
		return 0, false
	}
	return id, true
}

// redirectHome answers a form post with a redirect so a browser reload does
// not resubmit it.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
