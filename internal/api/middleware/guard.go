package middleware

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/api/metrics"
	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// Decision is the guard's verdict for one request.
type Decision string

const (
	DecisionAllow   Decision = "allow"
	DecisionLoading Decision = "loading"
	DecisionSignIn  Decision = "sign_in"
	DecisionDenied  Decision = "denied"
)

// Evaluate is the pure decision function: resolved session plus the route's
// required roles in, verdict out. An unresolved session yields loading and
// never a navigation decision. An empty role set admits any authenticated
// identity.
func Evaluate(sess *domain.Session, required []domain.Role) Decision {
	if sess == nil || sess.State == domain.StateUnresolved {
		return DecisionLoading
	}
	if !sess.Authenticated() {
		return DecisionSignIn
	}
	if len(required) == 0 {
		return DecisionAllow
	}

	for _, role := range required {
		if sess.Identity.Role == role {
			return DecisionAllow
		}
	}
	return DecisionDenied
}

// Guard evaluates the session injected by the Session middleware against the
// route's required roles and renders the non-allow outcomes itself: handlers
// behind it never inspect roles. Browsers get pages, API callers get the
// JSON error envelope. Mounting it on a route without the Session middleware
// is a wiring bug and panics on first use.
func Guard(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(sessionKey).(*domain.Session)
			if !ok {
				panic("middleware: guard ran without the Session middleware")
			}

			decision := Evaluate(sess, required)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision)).Inc()

			switch decision {
			case DecisionAllow:
				return next(c)
			case DecisionLoading:
				return renderLoading(c, sess)
			case DecisionSignIn:
				return renderSignIn(c)
			default:
				return renderDenied(c, required)
			}
		}
	}
}

// wantsHTML reports whether the caller is a browser navigation rather than
// an API client.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

func renderLoading(c echo.Context, sess *domain.Session) error {
	if sess == nil {
		sess = &domain.Session{}
	}
	c.Response().Header().Set("Retry-After", "2")

	if wantsHTML(c) {
		var buf strings.Builder
		if err := loadingPage.Execute(&buf, sess); err != nil {
			return err
		}
		return c.HTML(http.StatusServiceUnavailable, buf.String())
	}

	msg := "session not resolved yet, retry shortly"
	if sess.ProbeError != "" {
		msg = "session not resolved: " + sess.ProbeError
	}
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": msg})
}

func renderSignIn(c echo.Context) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
}

func renderDenied(c echo.Context, required []domain.Role) error {
	roles := roleNames(required)

	if wantsHTML(c) {
		var buf strings.Builder
		if err := deniedPage.Execute(&buf, roles); err != nil {
			return err
		}
		return c.HTML(http.StatusForbidden, buf.String())
	}

	return c.JSON(http.StatusForbidden, map[string]string{
		"error": "access restricted to roles: " + roles,
	})
}

// roleNames joins the required roles in the order the route declared them.
func roleNames(required []domain.Role) string {
	names := make([]string, len(required))
	for i, r := range required {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

var loadingPage = template.Must(template.New("loading").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="2">
<title>Checking your session</title>
</head>
<body>
<main>
<h1>Checking your session&hellip;</h1>
<p>This page retries automatically.</p>
{{if .ProbeError}}<p><small>{{.ProbeError}}</small></p>{{end}}
</main>
</body>
</html>
`))

var deniedPage = template.Must(template.New("denied").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Access denied</title>
</head>
<body>
<main>
<h1>Access denied</h1>
<p>This area is limited to: {{.}}.</p>
<p><a href="/dashboard">Back to the dashboard</a></p>
</main>
</body>
</html>
`))
