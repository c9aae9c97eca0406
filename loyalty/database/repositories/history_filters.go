package repositories

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/quickbite/loyalty/loyalty/config"
)

// HistoryFilters defines the optional filters for ledger history queries.
// Predicates are always parameterized; nothing is string-built from input.
type HistoryFilters struct {
	Category string
	Since    time.Time
	Until    time.Time

	Page  int
	Limit int
}

// Condition is one parameterized predicate.
type Condition struct {
	Expr string
	Args []interface{}
}

// Normalize clamps pagination to sane bounds.
func (f *HistoryFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = config.DefaultPageSize
	}
	if f.Limit > config.MaxPageSize {
		f.Limit = config.MaxPageSize
	}
}

// Offset returns the row offset for the normalized page.
func (f HistoryFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Conditions returns the active predicates in a fixed order, so composed
// queries are deterministic regardless of which filters are set.
func (f HistoryFilters) Conditions() []Condition {
	var conds []Condition
	if f.Category != "" {
		conds = append(conds, Condition{Expr: "points_type = ?", Args: []interface{}{f.Category}})
	}
	if !f.Since.IsZero() {
		conds = append(conds, Condition{Expr: "created_at >= ?", Args: []interface{}{f.Since}})
	}
	if !f.Until.IsZero() {
		conds = append(conds, Condition{Expr: "created_at <= ?", Args: []interface{}{f.Until}})
	}
	return conds
}

// Apply attaches all active predicates to a select query.
func (f HistoryFilters) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	for _, c := range f.Conditions() {
		q = q.Where(c.Expr, c.Args...)
	}
	return q
}
