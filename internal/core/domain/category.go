package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is a named tag attached to obligations.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	Name        string `json:"name"`       // Unique, case-insensitive
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// SameName reports whether name matches the category name ignoring case.
func (c *Category) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}

// CategoryTotal is the sum of payable obligation amounts grouped by category.
type CategoryTotal struct {
	CategoryID  string          `json:"categoryID"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
