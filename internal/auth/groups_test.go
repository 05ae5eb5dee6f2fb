package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meterportal/internal/model"
)

func TestGrantsFromGroups(t *testing.T) {
	groups := []string{
		"participant12_operator",
		"participant3_admin",
		"everyone",
		"participant3_admin",
		"participantX_admin",
		"participant3_operator",
	}

	got := GrantsFromGroups(groups)

	assert.Equal(t, []model.Grant{
		{Number: 3, Role: "admin"},
		{Number: 3, Role: "operator"},
		{Number: 12, Role: "operator"},
	}, got)
}

func TestGrantsFromGroups_Empty(t *testing.T) {
	got := GrantsFromGroups(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollapse(t *testing.T) {
	got := Collapse([]model.Grant{
		{Number: 5, Role: "operator"},
		{Number: 2, Role: "operator"},
		{Number: 5, Role: "admin"},
	})

	assert.Equal(t, []model.Grant{
		{Number: 2, Role: "operator"},
		{Number: 5, Role: "admin"},
	}, got)
}
