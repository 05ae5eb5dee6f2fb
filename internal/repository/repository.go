// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import "context"

// GroupRepository reads directory group memberships for portal users.
// No business logic here; mapping groups to grants happens in the service layer.
type GroupRepository interface {
	// GroupsByEmail returns the group names the user belongs to.
	// Emails are matched case-insensitively. An unknown user yields an empty slice.
	GroupsByEmail(ctx context.Context, email string) ([]string, error)
}
