package entity

import "strings"

// User is never hard-deleted; IsActive=false is the tombstone state.
type User struct {
	Base
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Phone        string `db:"phone"`
	Address      string `db:"address"`
	IsActive     bool   `db:"is_active"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
