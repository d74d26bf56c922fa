package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category labels transactions for reporting and budgeting. Categories
// form a shallow tree: a subcategory points at its parent by ID rather
// than by embedded pointer, so the full set behaves as an arena keyed
// by ID with no cyclic ownership.
type Category struct {
	ID          string
	Name        string
	Color       string
	Icon        string
	ParentID    string // empty for top-level categories
	IsActive    bool
	BudgetLimit *Money // optional per-category default limit
}

// NewCategory builds an active category with a fresh ID. Name, color
// and icon must all be non-empty.
func NewCategory(name, color, icon, parentID string, budgetLimit *Money) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}
	if strings.TrimSpace(color) == "" {
		return nil, fmt.Errorf("category color cannot be empty")
	}
	if strings.TrimSpace(icon) == "" {
		return nil, fmt.Errorf("category icon cannot be empty")
	}
	return &Category{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		Icon:        icon,
		ParentID:    parentID,
		IsActive:    true,
		BudgetLimit: budgetLimit,
	}, nil
}

// IsSubcategory reports whether the category has a parent.
func (c *Category) IsSubcategory() bool { return c.ParentID != "" }

// HasBudgetLimit reports whether a default limit is set.
func (c *Category) HasBudgetLimit() bool { return c.BudgetLimit != nil }

// Deactivate marks the category inactive; inactive categories cannot be
// assigned to transactions.
func (c *Category) Deactivate() { c.IsActive = false }

// Activate marks the category active again.
func (c *Category) Activate() { c.IsActive = true }
