package domain

import (
	"net/mail"
	"strings"
)

type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
	Theme  Theme   `json:"theme"`
}

func (u User) Clone() User {
	c := u
	if u.Avatar != nil {
		a := *u.Avatar
		c.Avatar = &a
	}
	return c
}

// DefaultUser is the profile a fresh store starts with.
func DefaultUser() User {
	return User{
		ID:    "1",
		Name:  "Student User",
		Email: "student@example.com",
		Theme: ThemeLight,
	}
}

type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
	Theme  *Theme
}

func (p UserPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("name", "name is required")
	}
	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Theme != nil && !p.Theme.Valid() {
		return invalid("theme", "unknown theme %q", *p.Theme)
	}
	return nil
}

// Apply merges the patch into u. An empty avatar string clears the avatar.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Avatar != nil {
		if *p.Avatar == "" {
			u.Avatar = nil
		} else {
			a := *p.Avatar
			u.Avatar = &a
		}
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
}

// ValidateEmail checks that s is a bare address like student@example.com.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return invalid("email", "email is required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return invalid("email", "invalid email address %q", s)
	}
	return nil
}
