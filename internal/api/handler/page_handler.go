package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// PageHandler serves the HTML shells around the JSON API: the sign-in page
// and the guarded dashboard sections. The shells stay intentionally bare;
// anything data-driven inside them talks to /api from the browser.
type PageHandler struct {
	// switchRoles is non-empty only when the composed provider can switch
	// roles; the shell then renders the role picker.
	switchRoles []string
}

func NewPageHandler(switchEnabled bool) *PageHandler {
	h := &PageHandler{}
	if switchEnabled {
		for _, r := range domain.Roles() {
			h.switchRoles = append(h.switchRoles, string(r))
		}
	}
	return h
}

// Login renders the sign-in page. Signed-in callers are bounced straight to
// the dashboard.
func (h *PageHandler) Login(c echo.Context) error {
	if ctxSession(c).Authenticated() {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return renderPage(c, loginPage, nil)
}

// Dashboard renders the shell for the landing section.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return h.section(c, "Dashboard")
}

// Section returns a handler rendering the shell for one guarded area.
func (h *PageHandler) Section(title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.section(c, title)
	}
}

type shellData struct {
	Section     string
	Name        string
	Role        string
	Company     string
	SwitchRoles []string
}

func (h *PageHandler) section(c echo.Context, title string) error {
	id := ctxIdentity(c)
	return renderPage(c, shellPage, shellData{
		Section:     title,
		Name:        id.DisplayName,
		Role:        string(id.Role),
		Company:     id.Company,
		SwitchRoles: h.switchRoles,
	})
}

func renderPage(c echo.Context, tpl *template.Template, data any) error {
	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Supplier Portal - Sign in</title>
</head>
<body>
<main>
<h1>Supplier Portal</h1>
<p id="flash"></p>
<section>
<h2>Sign in</h2>
<form onsubmit="submitAuth(event, this, '/auth/login')">
<label>Username <input name="username" autocomplete="username"></label>
<label>Password <input name="password" type="password" autocomplete="current-password"></label>
<button type="submit">Sign in</button>
</form>
</section>
<section>
<h2>Create an account</h2>
<form onsubmit="submitAuth(event, this, '/auth/register')">
<label>Username <input name="username" autocomplete="username"></label>
<label>Display name <input name="display_name"></label>
<label>Email <input name="email" type="email"></label>
<label>Role
<select name="role">
<option value="purchasing">purchasing</option>
<option value="operations">operations</option>
<option value="accounting">accounting</option>
<option value="legal">legal</option>
<option value="management">management</option>
<option value="supplier">supplier</option>
</select>
</label>
<label>Company (suppliers only) <input name="company"></label>
<label>Password <input name="password" type="password" autocomplete="new-password"></label>
<label>Confirm password <input name="confirm_password" type="password" autocomplete="new-password"></label>
<button type="submit">Register</button>
</form>
</section>
</main>
<script>
async function submitAuth(event, form, url) {
	event.preventDefault();
	const payload = Object.fromEntries(new FormData(form).entries());
	const resp = await fetch(url, {
		method: 'POST',
		headers: {'Content-Type': 'application/json'},
		body: JSON.stringify(payload),
	});
	const body = await resp.json().catch(() => ({}));
	if (resp.ok) {
		window.location = '/dashboard';
	} else {
		document.getElementById('flash').textContent = body.error || 'Something went wrong';
	}
}
</script>
</body>
</html>
`))

var shellPage = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Supplier Portal - {{.Section}}</title>
</head>
<body>
<header>
<strong>Supplier Portal</strong>
<span>{{.Name}} ({{.Role}}{{if .Company}}, {{.Company}}{{end}})</span>
{{if .SwitchRoles}}
<label>Browse as
<select onchange="switchRole(this)">
{{$current := .Role}}{{range .SwitchRoles}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
{{end}}
<button onclick="signOut()">Sign out</button>
</header>
<nav>
<a href="/dashboard">Dashboard</a>
<a href="/agreements">Agreements</a>
<a href="/tickets">Tickets</a>
<a href="/ratings">Ratings</a>
</nav>
<main>
<h1>{{.Section}}</h1>
<p id="flash"></p>
</main>
<script>
async function signOut() {
	await fetch('/auth/logout', {method: 'POST'});
	window.location = '/login';
}
async function switchRole(select) {
	const resp = await fetch('/auth/switch-role', {
		method: 'POST',
		headers: {'Content-Type': 'application/json'},
		body: JSON.stringify({role: select.value}),
	});
	if (resp.ok) {
		window.location.reload();
	} else {
		const body = await resp.json().catch(() => ({}));
		document.getElementById('flash').textContent = body.error || 'Switch failed';
	}
}
</script>
</body>
</html>
`))
