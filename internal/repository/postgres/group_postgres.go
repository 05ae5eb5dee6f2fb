package postgres

import (
	"context"
	"database/sql"
	"strings"

	"meterportal/internal/repository"
)

// GroupPostgres is a PostgreSQL implementation of repository.GroupRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type GroupPostgres struct {
	db *sql.DB
}

// NewGroupPostgres creates a new GroupPostgres repository.
func NewGroupPostgres(db *sql.DB) *GroupPostgres {
	return &GroupPostgres{db: db}
}

var _ repository.GroupRepository = (*GroupPostgres)(nil)

// GroupsByEmail lists the user's group names ordered by name.
func (r *GroupPostgres) GroupsByEmail(ctx context.Context, email string) ([]string, error) {
	const q = `
		SELECT group_name
		FROM user_groups
		WHERE lower(email) = $1
		ORDER BY group_name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]string, 0)
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}
