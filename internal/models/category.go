package models

// Category is a row of the categories table.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"` // Unique on lower(name)
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
