package api

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/wws/adminconsole/internal/adminclient"
	"github.com/wws/adminconsole/internal/console"
	"github.com/wws/adminconsole/internal/display"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type tenantRow struct {
	Tenant     adminclient.Tenant
	Users      display.Bar
	Devices    display.Bar
	Onboarding display.Badge
	Payment    display.Badge
}

type teamRow struct {
	Username string
	Email    string
	Role     string
}

type dashboardPage struct {
	View          console.View
	Notices       []console.Notice
	Skeleton      bool
	Rows          []tenantRow
	Team          []teamRow
	Overlay       string
	OverlayTenant adminclient.Tenant
}

func (s *Server) buildPage() dashboardPage {
	v := s.console.Snapshot()
	ds := s.display.Load()

	p := dashboardPage{
		View:     v,
		Notices:  s.console.DrainNotices(),
		Skeleton: v.Loading && v.Stats == nil,
		Overlay:  v.Overlay.Kind().String(),
	}
	if t, ok := v.Overlay.Tenant(); ok {
		p.OverlayTenant = t
	}

	if v.Stats != nil {
		p.Rows = make([]tenantRow, 0, len(v.Stats.Tenants))
		for _, t := range v.Stats.Tenants {
			p.Rows = append(p.Rows, tenantRow{
				Tenant:     t,
				Users:      display.LimitBar("Users", t.UserCount, t.MaxUsers, ds.threshold),
				Devices:    display.LimitBar("Devices", t.DeviceCount, t.MaxDevices, ds.threshold),
				Onboarding: ds.labeler.Badge(display.Onboarding, t.OnboardingStatus),
				Payment:    ds.labeler.Badge(display.Payment, t.PaymentStatus),
			})
		}
	}

	for _, m := range v.Team {
		p.Team = append(p.Team, teamRow{
			Username: field(m, "username"),
			Email:    field(m, "email"),
			Role:     field(m, "role"),
		})
	}
	return p
}

// field renders an untyped team member attribute, empty when absent.
func field(m adminclient.TeamMember, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// dashboardHandler renders the dashboard from the current console state.
// Pending notices are consumed by the render.
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, s.buildPage()); err != nil {
		slog.Error("rendering dashboard failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
