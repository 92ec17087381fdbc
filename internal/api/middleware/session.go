package middleware

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

// SessionCookie is the name of the signed sid cookie.
const SessionCookie = "portal_session"

// sessionKey is the echo context key the resolved session record is stored
// under. The handler package reads the same key.
const sessionKey = "session"

// CookieCodec mints and verifies the sid cookie. The sid travels as an
// HS256-signed JWT so a tampered cookie fails verification instead of
// hitting the session store with an attacker-chosen id.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieCodec builds a codec for the given signing secret. An empty
// secret generates a random one at startup; sessions then survive only as
// long as the process, which is acceptable for demo and single-replica
// deployments.
func NewCookieCodec(secret string, ttl time.Duration, secure bool) *CookieCodec {
	key := []byte(secret)
	if secret == "" {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("middleware: generating session cookie secret: " + err.Error())
		}
	}
	return &CookieCodec{secret: key, ttl: ttl, secure: secure}
}

// Mint signs sid into a cookie value.
func (cc *CookieCodec) Mint(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(cc.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(cc.secret)
}

// Verify parses a cookie value back into the sid it carries. Any parse,
// signature, or expiry failure reads as an empty sid, which the session
// service treats as first contact.
func (cc *CookieCodec) Verify(value string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}

	sid, _ := claims["sid"].(string)
	return sid
}

// ReadSID extracts the sid from the request's session cookie.
func (cc *CookieCodec) ReadSID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cc.Verify(cookie.Value)
}

// WriteSID sets the signed sid cookie on the response.
func (cc *CookieCodec) WriteSID(c echo.Context, sid string) error {
	value, err := cc.Mint(sid)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cc.ttl.Seconds()),
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSID expires the sid cookie.
func (cc *CookieCodec) ClearSID(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the request's session record and injects it into the
// context. When resolution moved the caller onto a new sid (first contact,
// expired record) the cookie is rewritten so the browser carries it from
// the next request on.
func Session(sessions ports.SessionService, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := codec.ReadSID(c.Request())

			sess := sessions.Resolve(c.Request().Context(), sid)
			if sess.SID != "" && sess.SID != sid {
				if err := codec.WriteSID(c, sess.SID); err != nil {
					return err
				}
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}
