package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password and never serialized.
type User struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	Email                  string    `json:"email"`
	Password               string    `json:"-"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Role                   string    `json:"role"`
	OrganizationID         string    `json:"organizationId,omitempty"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ProfileComplete reports whether firstName, lastName and role are all
// non-blank after trimming. Route access on the client gates on this.
func (u *User) ProfileComplete() bool {
	return strings.TrimSpace(u.FirstName) != "" &&
		strings.TrimSpace(u.LastName) != "" &&
		strings.TrimSpace(u.Role) != ""
}
