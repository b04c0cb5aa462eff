package api

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{if .Skeleton}}<meta http-equiv="refresh" content="2">{{end}}
<title>wws Admin Console</title>
<style>
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
:root{
  --bg:#0f1117;--bg-card:#161b22;--bg-card-hover:#1c2129;--bg-input:#0d1117;
  --border:#30363d;--text:#e1e4e8;--text-muted:#8b949e;--text-dim:#484f58;
  --primary:#58a6ff;--primary-hover:#79b8ff;
  --green:#3fb950;--red:#f85149;--yellow:#d29922;
  --radius:8px;--radius-sm:4px;
}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif;background:var(--bg);color:var(--text);line-height:1.5;min-height:100vh;display:flex}
button{cursor:pointer;font-family:inherit;font-size:inherit}
form.inline{display:inline}

/* Sidebar */
aside{width:220px;background:var(--bg-card);border-right:1px solid var(--border);padding:20px 12px;flex-shrink:0}
body.sidebar-closed aside{display:none}
.brand{font-size:18px;font-weight:700;padding:0 8px 20px}
.nav-btn{display:block;width:100%;text-align:left;background:none;border:none;color:var(--text-muted);padding:8px 12px;border-radius:var(--radius-sm);margin-bottom:4px}
.nav-btn:hover{background:var(--bg-card-hover);color:var(--text)}
.nav-btn.active{background:var(--primary);color:#fff}

/* Main */
main{flex:1;min-width:0}
header{background:var(--bg-card);border-bottom:1px solid var(--border);padding:12px 24px;display:flex;align-items:center;gap:12px;position:sticky;top:0;z-index:100}
header h1{font-size:18px;font-weight:600}
.header-actions{margin-left:auto;display:flex;gap:8px}
.container{padding:24px}

/* Cards */
.summary{display:grid;grid-template-columns:repeat(3,1fr);gap:16px;margin-bottom:24px}
.card{background:var(--bg-card);border:1px solid var(--border);border-radius:var(--radius);padding:20px}
.card-label{font-size:12px;text-transform:uppercase;letter-spacing:.5px;color:var(--text-muted);margin-bottom:4px}
.card-value{font-size:32px;font-weight:700;line-height:1.2}
.skeleton .card-value{color:transparent;background:var(--border);border-radius:var(--radius-sm);animation:pulse 1.2s infinite}
@keyframes pulse{50%{opacity:.4}}

/* Buttons */
.btn{display:inline-flex;align-items:center;gap:6px;padding:8px 16px;border-radius:var(--radius);font-size:14px;font-weight:500;border:1px solid var(--border);background:var(--bg-card);color:var(--text)}
.btn:hover{background:var(--bg-card-hover)}
.btn-primary{background:var(--primary);border-color:var(--primary);color:#fff}
.btn-primary:hover{background:var(--primary-hover)}
.btn-danger{color:var(--red);border-color:var(--red)}
.btn-sm{padding:4px 10px;font-size:12px}
.toolbar{display:flex;align-items:center;gap:12px;margin-bottom:16px}
.toolbar h2{font-size:16px}
.toolbar .btn{margin-left:auto}

/* Table */
.table-wrap{background:var(--bg-card);border:1px solid var(--border);border-radius:var(--radius);overflow:auto}
table{width:100%;border-collapse:collapse;font-size:14px}
th{text-align:left;padding:12px 16px;font-weight:600;color:var(--text-muted);border-bottom:1px solid var(--border);font-size:12px;text-transform:uppercase;letter-spacing:.5px}
td{padding:10px 16px;border-bottom:1px solid var(--border);vertical-align:middle}
tbody tr:last-child td{border-bottom:none}
.tenant-name{display:flex;align-items:center;gap:8px;font-weight:600}
.tenant-name img{width:24px;height:24px;border-radius:4px;object-fit:cover}
.slug{font-size:12px;color:var(--text-dim)}
.inactive{opacity:.55}
.actions-cell{display:flex;gap:4px;flex-wrap:wrap}
.limit-form input{width:64px;background:var(--bg-input);color:var(--text);border:1px solid var(--border);border-radius:var(--radius-sm);padding:3px 6px;font-size:12px}
.empty-state{text-align:center;padding:48px 20px;color:var(--text-muted)}

/* Limit bars */
.bar-label{display:flex;justify-content:space-between;font-size:12px;color:var(--text-muted);min-width:140px}
.bar{height:6px;background:var(--border);border-radius:3px;overflow:hidden;margin-top:2px}
.bar-fill{height:100%;background:var(--primary)}
.bar-fill.critical{background:var(--red)}

/* Badges */
.status{display:inline-block;padding:2px 8px;border-radius:12px;font-size:11px;font-weight:600;margin:1px 0}
.status-good{color:var(--green);background:rgba(63,185,80,.12)}
.status-warn{color:var(--yellow);background:rgba(210,153,34,.12)}
.status-neutral{color:var(--text-muted);background:rgba(72,79,88,.2)}

/* Overlays */
.modal-overlay{position:fixed;inset:0;background:rgba(0,0,0,.6);z-index:200;display:flex;align-items:center;justify-content:center}
.modal{background:var(--bg-card);border:1px solid var(--border);border-radius:var(--radius);width:90%;max-width:560px;max-height:85vh;overflow-y:auto;padding:24px}
.modal h2{margin-bottom:16px;display:flex;align-items:center;gap:10px;font-size:18px}
.modal-close{margin-left:auto;background:none;border:none;color:var(--text-muted);font-size:20px;padding:4px 8px}
.drawer{position:fixed;top:0;right:0;bottom:0;width:420px;max-width:100%;background:var(--bg-card);border-left:1px solid var(--border);z-index:200;padding:24px;overflow-y:auto}
.drawer h2{font-size:18px;display:flex;align-items:center;gap:10px;margin-bottom:16px}
.device{border:1px solid var(--border);border-radius:var(--radius-sm);padding:10px 12px;margin-bottom:8px;display:flex;align-items:center;gap:8px}
.device-meta{font-size:12px;color:var(--text-muted)}
.device .btn{margin-left:auto}
.notice-box{padding:12px;border:1px dashed var(--border);border-radius:var(--radius-sm);color:var(--text-muted);font-size:14px}
.form-grid{display:grid;grid-template-columns:1fr 1fr;gap:12px}
.form-group{display:flex;flex-direction:column;gap:4px}
.form-group label{font-size:12px;color:var(--text-muted);text-transform:uppercase;letter-spacing:.3px}
.form-group input{background:var(--bg-input);color:var(--text);border:1px solid var(--border);border-radius:var(--radius-sm);padding:8px 10px;font-size:14px}
.form-actions{display:flex;gap:8px;margin-top:16px}

/* Toasts */
.toast-stack{position:fixed;bottom:20px;right:20px;z-index:400;display:flex;flex-direction:column-reverse;gap:8px}
.toast{padding:12px 16px;border-radius:var(--radius);font-size:14px;font-weight:500;background:var(--bg-card);min-width:280px;animation:toast-in .3s ease}
.toast-success{border:1px solid var(--green);color:var(--green)}
.toast-error{border:1px solid var(--red);color:var(--red)}
.toast-info{border:1px solid var(--primary);color:var(--primary)}
@keyframes toast-in{from{transform:translateX(100%);opacity:0}to{transform:translateX(0);opacity:1}}

@media(max-width:900px){.summary{grid-template-columns:1fr}.form-grid{grid-template-columns:1fr}aside{width:160px}}
</style>
</head>
<body class="{{if not .View.SidebarOpen}}sidebar-closed{{end}}">

<aside>
  <div class="brand">wws Admin</div>
  <form method="post" action="/actions/tab">
    <button class="nav-btn {{if eq .View.Tab "overview"}}active{{end}}" name="tab" value="overview">Overview</button>
    <button class="nav-btn {{if eq .View.Tab "tenants"}}active{{end}}" name="tab" value="tenants">Dealers</button>
    <button class="nav-btn {{if eq .View.Tab "settings"}}active{{end}}" name="tab" value="settings">Settings</button>
  </form>
</aside>

<main>
<header>
  <form class="inline" method="post" action="/actions/sidebar"><button class="btn btn-sm" title="Toggle sidebar">&#9776;</button></form>
  <h1>{{if eq .View.Tab "tenants"}}Dealers{{else if eq .View.Tab "settings"}}Settings{{else}}Overview{{end}}</h1>
  <div class="header-actions">
    <form class="inline" method="post" action="/actions/refresh"><button class="btn btn-sm">Refresh</button></form>
  </div>
</header>

<div class="container">
{{if .Skeleton}}
  <div class="summary skeleton">
    <div class="card"><div class="card-label">Dealers</div><div class="card-value">000</div></div>
    <div class="card"><div class="card-label">Users</div><div class="card-value">000</div></div>
    <div class="card"><div class="card-label">Devices</div><div class="card-value">000</div></div>
  </div>
{{else if eq .View.Tab "settings"}}
  <div class="toolbar"><h2>Team</h2></div>
  <div class="table-wrap">
  {{if .Team}}
    <table>
      <thead><tr><th>Username</th><th>Email</th><th>Role</th></tr></thead>
      <tbody>
      {{range .Team}}<tr><td>{{.Username}}</td><td>{{.Email}}</td><td>{{.Role}}</td></tr>{{end}}
      </tbody>
    </table>
  {{else}}
    <div class="empty-state">No team members loaded.</div>
  {{end}}
  </div>
{{else}}
  {{with .View.Stats}}
  <div class="summary">
    <div class="card"><div class="card-label">Dealers</div><div class="card-value">{{.TotalTenants}}</div></div>
    <div class="card"><div class="card-label">Users</div><div class="card-value">{{.TotalUsers}}</div></div>
    <div class="card"><div class="card-label">Devices</div><div class="card-value">{{.TotalDevices}}</div></div>
  </div>
  {{end}}

  <div class="toolbar">
    <h2>Dealers</h2>
    <form class="inline" method="post" action="/actions/tenant-modal"><button class="btn btn-primary">+ New dealer</button></form>
  </div>
  <div class="table-wrap">
  {{if .Rows}}
    <table>
      <thead><tr><th>Dealer</th><th>Status</th><th>Users</th><th>Devices</th><th>Actions</th></tr></thead>
      <tbody>
      {{range .Rows}}
      <tr class="{{if not .Tenant.IsActive}}inactive{{end}}">
        <td>
          <div class="tenant-name">{{if .Tenant.LogoURL}}<img src="{{.Tenant.LogoURL}}" alt="">{{end}}{{.Tenant.Name}}</div>
          <div class="slug">{{.Tenant.Slug}}</div>
        </td>
        <td>
          <span class="status status-{{.Onboarding.Tone}}">{{.Onboarding.Label}}</span><br>
          <span class="status status-{{.Payment.Tone}}">{{.Payment.Label}}</span>
        </td>
        <td>
          {{with .Users}}<div class="bar-label"><span>{{.Current}} / {{.Max}}</span></div>
          <div class="bar"><div class="bar-fill {{if .Critical}}critical{{end}}" style="width:{{.Width}}"></div></div>{{end}}
        </td>
        <td>
          {{with .Devices}}<div class="bar-label"><span>{{.Current}} / {{.Max}}</span></div>
          <div class="bar"><div class="bar-fill {{if .Critical}}critical{{end}}" style="width:{{.Width}}"></div></div>{{end}}
        </td>
        <td>
          <div class="actions-cell">
            <form class="inline" method="post" action="/actions/devices">
              <input type="hidden" name="tenant_id" value="{{.Tenant.ID}}">
              <button class="btn btn-sm">Devices</button>
            </form>
            <form class="inline" method="post" action="/actions/user-modal">
              <input type="hidden" name="tenant_id" value="{{.Tenant.ID}}">
              <button class="btn btn-sm">+ User</button>
            </form>
            <form class="inline limit-form" method="post" action="/actions/limits">
              <input type="hidden" name="tenant_id" value="{{.Tenant.ID}}">
              <input type="number" name="max_users" min="0" value="{{.Tenant.MaxUsers}}" aria-label="User limit">
              <button class="btn btn-sm">Set limit</button>
            </form>
          </div>
        </td>
      </tr>
      {{end}}
      </tbody>
    </table>
  {{else}}
    <div class="empty-state">No dealers yet.</div>
  {{end}}
  </div>
{{end}}
</div>
</main>

{{if eq .Overlay "device-drawer"}}
<div class="drawer">
  <h2>Devices &middot; {{.OverlayTenant.Name}}
    <form class="inline" method="post" action="/actions/close" style="margin-left:auto"><button class="modal-close" title="Close">&times;</button></form>
  </h2>
  {{if not .View.DevicesAvailable}}
    <div class="notice-box">Device management is not available yet.</div>
  {{else if .View.ActiveDevices}}
    {{range .View.ActiveDevices}}
    <div class="device">
      <div>
        <div>{{.DeviceID}}</div>
        <div class="device-meta">{{if .User}}{{.User}} &middot; {{end}}{{.LastSeen}}{{if .IP}} &middot; {{.IP}}{{end}}</div>
      </div>
      <form class="inline" method="post" action="/actions/devices/remove">
        <input type="hidden" name="tenant_id" value="{{$.OverlayTenant.ID}}">
        <input type="hidden" name="device_id" value="{{.DeviceID}}">
        <button class="btn btn-sm btn-danger">Sign out</button>
      </form>
    </div>
    {{end}}
  {{else}}
    <div class="notice-box">No active devices.</div>
  {{end}}
</div>
{{end}}

{{if eq .Overlay "tenant-modal"}}
<div class="modal-overlay">
  <div class="modal">
    <h2>New dealer
      <form class="inline" method="post" action="/actions/close" style="margin-left:auto"><button class="modal-close" title="Close">&times;</button></form>
    </h2>
    <form method="post" action="/actions/tenants">
      {{with .View.TenantForm}}
      <div class="form-grid">
        <div class="form-group"><label for="t-name">Name</label><input id="t-name" name="name" required value="{{.Name}}"></div>
        <div class="form-group"><label for="t-email">Email</label><input id="t-email" name="email" type="email" required value="{{.Email}}"></div>
        <div class="form-group"><label for="t-phone">Phone</label><input id="t-phone" name="phone" value="{{.Phone}}"></div>
        <div class="form-group"><label for="t-website">Website</label><input id="t-website" name="website" value="{{.Website}}"></div>
        <div class="form-group"><label for="t-whatsapp">WhatsApp</label><input id="t-whatsapp" name="whatsapp_number" value="{{.WhatsAppNumber}}"></div>
        <div class="form-group"><label for="t-logo">Logo URL</label><input id="t-logo" name="logo_url" type="url" value="{{.LogoURL}}"></div>
        <div class="form-group"><label for="t-password">Initial password</label><input id="t-password" name="password" value="{{.Password}}"></div>
      </div>
      {{end}}
      <div class="form-actions"><button class="btn btn-primary">Create dealer</button></div>
    </form>
  </div>
</div>
{{end}}

{{if eq .Overlay "user-modal"}}
<div class="modal-overlay">
  <div class="modal">
    <h2>New user &middot; {{.OverlayTenant.Name}}
      <form class="inline" method="post" action="/actions/close" style="margin-left:auto"><button class="modal-close" title="Close">&times;</button></form>
    </h2>
    <form method="post" action="/actions/users">
      {{with .View.UserForm}}
      <div class="form-grid">
        <div class="form-group"><label for="u-email">Email</label><input id="u-email" name="email" type="email" required value="{{.Email}}"></div>
        <div class="form-group"><label for="u-username">Username</label><input id="u-username" name="username" required value="{{.Username}}"></div>
        <div class="form-group"><label for="u-password">Password</label><input id="u-password" name="password" type="password" required></div>
      </div>
      {{end}}
      <div class="form-actions"><button class="btn btn-primary">Create user</button></div>
    </form>
  </div>
</div>
{{end}}

{{if .Notices}}
<div class="toast-stack">
  {{range .Notices}}<div class="toast toast-{{.Kind}}">{{.Message}}</div>{{end}}
</div>
{{end}}

</body>
</html>
`
