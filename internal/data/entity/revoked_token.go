package entity

import "time"

// RevokedToken is a denylist entry for a bearer token that was logged out
// before its natural expiry. Entries are useless after ExpiresAt.
type RevokedToken struct {
	TokenID   string    `db:"jti"`
	Username  string    `db:"username"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}
