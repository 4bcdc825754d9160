package models

// Expense represents money one member paid on behalf of the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// PayerID is the member who fronted the money.
	PayerID string

	// Value is the amount paid, in the group's currency. Always positive.
	Value float64

	// Category is a free-text label, stored lower-cased.
	Category string

	// Description is what the money was spent on (e.g., "Dinner", "Train tickets").
	Description string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
