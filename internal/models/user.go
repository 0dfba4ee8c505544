package models

import "time"

// User is a single account record. Agents and clients share the table and
// are told apart by IsStaff.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsStaff      bool       `json:"is_staff"`
	IsActive     bool       `json:"is_active"`
	Passport     *string    `json:"passport,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Photo        *string    `json:"photo,omitempty"`
	DateJoined   time.Time  `json:"date_joined"`
}

// IsAgent reports whether the user belongs to the agent partition.
func (u *User) IsAgent() bool { return u.IsStaff }
