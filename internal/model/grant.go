package model

import (
	"strings"
	"time"
)

// Roles a user can hold on a participant.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Grant is a user's role on one participant.
type Grant struct {
	Number int    `json:"number"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the grant carries the admin role.
func (g Grant) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(g.Role), RoleAdmin)
}

// User is the authenticated portal user.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is an issued portal session token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Dashboard is the private dashboard configuration for one project.
type Dashboard struct {
	Project    string   `json:"project"`
	URI        string   `json:"uri"`
	Properties []string `json:"properties"`
}
