package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/api/middleware"
	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

// AuthHandler exposes the credential operations. It owns no session logic:
// every state change goes through the session service, and the handler only
// translates between HTTP and the service port, including the sid cookie.
type AuthHandler struct {
	sessions ports.SessionService
	codec    *middleware.CookieCodec
}

func NewAuthHandler(sessions ports.SessionService, codec *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{sessions: sessions, codec: codec}
}

// Login signs the caller in and moves them onto a rotated session.
//
// @Summary      Sign in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, notice, err := h.sessions.Login(c.Request().Context(), ports.LoginInput{
		SID:        ctxSession(c).SID,
		Username:   req.Username,
		Password:   req.Password,
		RemoteAddr: c.RealIP(),
	})
	if err != nil {
		return err
	}

	if err := h.codec.WriteSID(c, sess.SID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Session: toSessionView(sess), Notice: toNoticeView(notice)})
}

// Register creates an account and signs it in like a login.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, notice, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		SID:             ctxSession(c).SID,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DisplayName:     req.DisplayName,
		Email:           req.Email,
		Role:            req.Role,
		Company:         req.Company,
		RemoteAddr:      c.RealIP(),
	})
	if err != nil {
		return err
	}

	if err := h.codec.WriteSID(c, sess.SID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Session: toSessionView(sess), Notice: toNoticeView(notice)})
}

// Logout destroys the session and clears the cookie. It answers 200 even
// when the upstream sign-out failed; the notice says which way it went.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	notice := h.sessions.Logout(c.Request().Context(), ports.LogoutInput{
		SID:        ctxSession(c).SID,
		RemoteAddr: c.RealIP(),
	})

	h.codec.ClearSID(c)
	return c.JSON(http.StatusOK, authResponse{Session: toSessionView(domain.Anonymous()), Notice: toNoticeView(notice)})
}

// Session reports the caller's current session state. It is mounted without
// a guard: the dashboard polls it to decide what to render, so every state
// answers 200.
//
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/me [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{Session: toSessionView(ctxSession(c))})
}

// SwitchRole swaps the demo identity for the predefined identity of another
// role. The route exists only when the composed provider supports switching.
//
// @Summary      Switch the demo role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      switchRoleRequest  true  "Target role"
// @Success      200   {object}  authResponse
// @Failure      422   {object}  map[string]string
// @Router       /auth/switch-role [post]
func (h *AuthHandler) SwitchRole(c echo.Context) error {
	var req switchRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	current := ctxSession(c).SID
	sess, notice, err := h.sessions.SwitchRole(c.Request().Context(), ports.SwitchRoleInput{
		SID:        current,
		Role:       req.Role,
		RemoteAddr: c.RealIP(),
	})
	if err != nil {
		return err
	}

	// The switch keeps the sid except when the record had vanished from the
	// store and a replacement was minted.
	if sess.SID != current {
		if err := h.codec.WriteSID(c, sess.SID); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, authResponse{Session: toSessionView(sess), Notice: toNoticeView(notice)})
}
