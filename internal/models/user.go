package models

import "time"

// User is a registered customer or admin. Email is the record key and is
// immutable after registration.
type User struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	SSN         string `json:"ssn,omitempty"`

	// PasswordHash holds a bcrypt hash. The JSON key is "password" for
	// compatibility with the stored record shape; the raw password is
	// never persisted.
	PasswordHash string `json:"password,omitempty"`

	IsAdmin   bool      `json:"isAdmin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
