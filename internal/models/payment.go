package models

// Payment represents a direct transfer between group members to clear debts.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// PayerID is the member who sent the money (debtor settling up).
	PayerID string

	// TargetID is the member who received it (creditor being paid).
	TargetID string

	// Value is the amount transferred. Always positive.
	Value float64

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
