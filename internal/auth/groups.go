package auth

import (
	"regexp"
	"sort"
	"strconv"

	"meterportal/internal/model"
)

var groupPattern = regexp.MustCompile(`participant(\d+)_(admin|operator)`)

// GrantsFromGroups maps directory group names such as "participant12_admin" to grants.
// Unrelated groups are ignored and duplicates removed; the result is ordered by
// participant number, then role.
func GrantsFromGroups(groups []string) []model.Grant {
	seen := make(map[model.Grant]bool)
	grants := make([]model.Grant, 0)
	for _, name := range groups {
		m := groupPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		g := model.Grant{Number: n, Role: m[2]}
		if seen[g] {
			continue
		}
		seen[g] = true
		grants = append(grants, g)
	}
	sort.SliceStable(grants, func(i, j int) bool {
		if grants[i].Number != grants[j].Number {
			return grants[i].Number < grants[j].Number
		}
		return grants[i].Role < grants[j].Role
	})
	return grants
}

// Collapse merges grants on the same participant, keeping admin over operator.
func Collapse(grants []model.Grant) []model.Grant {
	byNumber := make(map[int]model.Grant)
	order := make([]int, 0)
	for _, g := range grants {
		cur, ok := byNumber[g.Number]
		if !ok {
			order = append(order, g.Number)
			byNumber[g.Number] = g
			continue
		}
		if !cur.IsAdmin() && g.IsAdmin() {
			byNumber[g.Number] = g
		}
	}
	sort.Ints(order)
	out := make([]model.Grant, 0, len(order))
	for _, n := range order {
		out = append(out, byNumber[n])
	}
	return out
}
