package handler

import (
	"time"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/notify"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerRequest carries the sign-up form. The confirmation never travels
// further than the service's local check.
type registerRequest struct {
	Username        string `json:"username"         validate:"required"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	DisplayName     string `json:"display_name"     validate:"required"`
	Email           string `json:"email"            validate:"omitempty,email"`
	Role            string `json:"role"             validate:"required"`
	Company         string `json:"company"`
}

type switchRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// identityView is the wire shape of an identity. It mirrors domain.Identity
// field for field; having a separate type keeps the response contract stable
// against domain changes.
type identityView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
}

// sessionView is what the dashboard learns about its session. The sid stays
// in the cookie and the access token never leaves the gateway.
type sessionView struct {
	State      string        `json:"state"`
	Identity   *identityView `json:"identity,omitempty"`
	ProbeError string        `json:"probe_error,omitempty"`
	ExpiresAt  *time.Time    `json:"expires_at,omitempty"`
}

type noticeView struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type sessionResponse struct {
	Session sessionView `json:"session"`
}

// authResponse answers every credential operation: the session after the
// operation plus the notice it published.
type authResponse struct {
	Session sessionView `json:"session"`
	Notice  noticeView  `json:"notice"`
}

type activityEntryView struct {
	At         time.Time `json:"at"`
	Actor      string    `json:"actor,omitempty"`
	Operation  string    `json:"operation"`
	Result     string    `json:"result"`
	Detail     string    `json:"detail,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
}

type activityResponse struct {
	Entries []activityEntryView `json:"entries"`
}

func toIdentityView(id *domain.Identity) *identityView {
	if id == nil {
		return nil
	}
	return &identityView{
		ID:          id.ID,
		Username:    id.Username,
		DisplayName: id.DisplayName,
		Email:       id.Email,
		Role:        string(id.Role),
		Company:     id.Company,
	}
}

func toSessionView(sess *domain.Session) sessionView {
	view := sessionView{
		State:      string(sess.State),
		Identity:   toIdentityView(sess.Identity),
		ProbeError: sess.ProbeError,
	}
	if !sess.ExpiresAt.IsZero() {
		expires := sess.ExpiresAt
		view.ExpiresAt = &expires
	}
	return view
}

func toNoticeView(n notify.Notice) noticeView {
	return noticeView{Level: string(n.Level), Message: n.Message}
}

func toActivityView(entries []*domain.ActivityEntry) []activityEntryView {
	views := make([]activityEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, activityEntryView{
			At:         e.At,
			Actor:      e.Actor,
			Operation:  e.Operation,
			Result:     e.Result,
			Detail:     e.Detail,
			RemoteAddr: e.RemoteAddr,
		})
	}
	return views
}
