package models

import "time"

// Session maps an opaque token to an authenticated identity. Sessions are
// authoritative records in the store: consulted on every request, deleted on
// logout.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}
