// Package search filters and paginates transaction collections using
// the domain specification predicates.
package search

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pagination bounds enforced by Query.Validate.
const (
	minLimit = 1
	maxLimit = 100
)

// Query describes one transaction search. All filters are optional and
// AND-combined; Limit/Offset page through the full match list.
type Query struct {
	SearchTerm string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Limit      int
	Offset     int
}

// Validate enforces the query invariants before the handler runs.
func (q Query) Validate() error {
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return fmt.Errorf("start date must be before or equal to end date")
	}
	if q.MinAmount != nil && q.MinAmount.IsNegative() {
		return fmt.Errorf("minimum amount cannot be negative")
	}
	if q.MaxAmount != nil && q.MaxAmount.IsNegative() {
		return fmt.Errorf("maximum amount cannot be negative")
	}
	if q.Limit < minLimit || q.Limit > maxLimit {
		return fmt.Errorf("limit must be between %d and %d", minLimit, maxLimit)
	}
	if q.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	return nil
}
