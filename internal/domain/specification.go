package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Specification is a boolean test over a single transaction. Predicates
// compose into an explicit expression tree via And/Or/Not, so there is
// no precedence ambiguity to resolve.
type Specification interface {
	IsSatisfiedBy(t *Transaction) bool
}

type byCategory struct{ categoryID string }

// ByCategory matches transactions carrying the given category.
// Uncategorized transactions never match.
func ByCategory(categoryID string) Specification {
	return byCategory{categoryID: categoryID}
}

func (s byCategory) IsSatisfiedBy(t *Transaction) bool {
	return t.Category != nil && t.Category.ID == s.categoryID
}

type byDateRange struct{ start, end time.Time }

// ByDateRange matches transactions dated within [start, end], inclusive
// on both ends.
func ByDateRange(start, end time.Time) Specification {
	return byDateRange{start: start, end: end}
}

func (s byDateRange) IsSatisfiedBy(t *Transaction) bool {
	return !t.Date.Before(s.start) && !t.Date.After(s.end)
}

type byAmountRange struct{ min, max *decimal.Decimal }

// ByAmountRange matches transactions whose raw signed amount lies
// within the supplied bounds. A nil bound leaves that side unbounded.
func ByAmountRange(min, max *decimal.Decimal) Specification {
	return byAmountRange{min: min, max: max}
}

func (s byAmountRange) IsSatisfiedBy(t *Transaction) bool {
	if s.min != nil && t.Amount.Amount.LessThan(*s.min) {
		return false
	}
	if s.max != nil && t.Amount.Amount.GreaterThan(*s.max) {
		return false
	}
	return true
}

type byMerchant struct{ substr string }

// ByMerchant matches on a case-insensitive substring of the merchant.
// Transactions without a merchant never match.
func ByMerchant(substr string) Specification {
	return byMerchant{substr: strings.ToLower(substr)}
}

func (s byMerchant) IsSatisfiedBy(t *Transaction) bool {
	return t.Merchant != "" && strings.Contains(strings.ToLower(t.Merchant), s.substr)
}

type byDescription struct{ substr string }

// ByDescription matches on a case-insensitive substring of the
// description.
func ByDescription(substr string) Specification {
	return byDescription{substr: strings.ToLower(substr)}
}

func (s byDescription) IsSatisfiedBy(t *Transaction) bool {
	return strings.Contains(strings.ToLower(t.Description), s.substr)
}

type andSpec struct{ specs []Specification }

// And matches when every sub-predicate matches. With no sub-predicates
// it is vacuously true.
func And(specs ...Specification) Specification {
	return andSpec{specs: specs}
}

func (s andSpec) IsSatisfiedBy(t *Transaction) bool {
	for _, spec := range s.specs {
		if !spec.IsSatisfiedBy(t) {
			return false
		}
	}
	return true
}

type orSpec struct{ specs []Specification }

// Or matches when any sub-predicate matches. With no sub-predicates it
// is vacuously false.
func Or(specs ...Specification) Specification {
	return orSpec{specs: specs}
}

func (s orSpec) IsSatisfiedBy(t *Transaction) bool {
	for _, spec := range s.specs {
		if spec.IsSatisfiedBy(t) {
			return true
		}
	}
	return false
}

type notSpec struct{ spec Specification }

// Not negates a predicate.
func Not(spec Specification) Specification {
	return notSpec{spec: spec}
}

func (s notSpec) IsSatisfiedBy(t *Transaction) bool {
	return !s.spec.IsSatisfiedBy(t)
}
