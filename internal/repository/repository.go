package repository

import (
	"fmt"
	"strings"
)

// ListOptions are the ordering/filter/pagination knobs shared by the child
// collection listings.
type ListOptions struct {
	// Ordering names a whitelisted column, optionally prefixed with "-"
	// for descending. Empty means primary-key (insertion) order.
	Ordering string
	// Author filters by the author's username when non-empty.
	Author string
	Offset int
	Limit  int
}

// orderClause translates an ordering token into a SQL ORDER BY expression.
// Unknown columns fall back to the default so clients cannot inject
// arbitrary expressions.
func orderClause(ordering string, allowed map[string]bool, fallback string) string {
	if ordering == "" {
		return fallback
	}

	column := ordering
	desc := false
	if strings.HasPrefix(ordering, "-") {
		column = ordering[1:]
		desc = true
	}

	if !allowed[column] {
		return fallback
	}
	if desc {
		return fmt.Sprintf("%s DESC", column)
	}
	return column
}
