package domain

import "time"

// Activity operations recorded in the auth trail.
const (
	ActivityLogin      = "login"
	ActivityRegister   = "register"
	ActivityLogout     = "logout"
	ActivityRoleSwitch = "role_switch"
)

// Activity results.
const (
	ActivityOK     = "ok"
	ActivityFailed = "failed"
)

// ActivityEntry is one line of the auth activity trail: who attempted which
// credential operation, from where, and how it ended.
type ActivityEntry struct {
	At         time.Time `json:"at"`
	SID        string    `json:"sid,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Operation  string    `json:"operation"`
	Result     string    `json:"result"`
	Detail     string    `json:"detail,omitempty"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
}
