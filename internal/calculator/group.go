package calculator

import "fmt"

// Group is the snapshot the engine works on. The data layer resolves it
// completely before any calculation starts.
type Group struct {
	ID       string
	Name     string
	Members  []string // ordered, unique member IDs
	Expenses []Expense
	Payments []Payment
}

// Expense is an amount fronted by one member on behalf of the whole group.
type Expense struct {
	ID          string
	PayerID     string
	Value       float64
	Category    string
	Description string
	Timestamp   int64
}

// Payment is a direct transfer between two members.
type Payment struct {
	ID        string
	PayerID   string // who sent money
	TargetID  string // who received it
	Value     float64
	Timestamp int64
}

// validate checks the input contract and returns the member set.
func (g Group) validate() (map[string]bool, error) {
	if len(g.Members) == 0 {
		if len(g.Expenses) > 0 || len(g.Payments) > 0 {
			return nil, invalid("members", "", ErrNoMembers)
		}
		return nil, nil
	}

	members := make(map[string]bool, len(g.Members))
	for i, m := range g.Members {
		if m == "" {
			return nil, invalid(fmt.Sprintf("members[%d]", i), m, ErrUnknownMember)
		}
		if members[m] {
			return nil, invalid(fmt.Sprintf("members[%d]", i), m, ErrDuplicateMember)
		}
		members[m] = true
	}

	// Every balance is bounded by the sum of all amounts, so checking that
	// sum keeps the later arithmetic inside int64.
	var volume int64
	for i, e := range g.Expenses {
		if !members[e.PayerID] {
			return nil, invalid(fmt.Sprintf("expenses[%d].payer_id", i), e.PayerID, ErrUnknownMember)
		}
		field := fmt.Sprintf("expenses[%d].value", i)
		cents, err := checkAmount(field, e.Value)
		if err != nil {
			return nil, err
		}
		var ok bool
		if volume, ok = addCents(volume, cents); !ok {
			return nil, invalid(field, fmt.Sprint(e.Value), ErrAmountOverflow)
		}
	}

	for i, p := range g.Payments {
		if !members[p.PayerID] {
			return nil, invalid(fmt.Sprintf("payments[%d].payer_id", i), p.PayerID, ErrUnknownMember)
		}
		if !members[p.TargetID] {
			return nil, invalid(fmt.Sprintf("payments[%d].target_id", i), p.TargetID, ErrUnknownMember)
		}
		if p.PayerID == p.TargetID {
			return nil, invalid(fmt.Sprintf("payments[%d].target_id", i), p.TargetID, ErrSelfPayment)
		}
		field := fmt.Sprintf("payments[%d].value", i)
		cents, err := checkAmount(field, p.Value)
		if err != nil {
			return nil, err
		}
		var ok bool
		if volume, ok = addCents(volume, cents); !ok {
			return nil, invalid(field, fmt.Sprint(p.Value), ErrAmountOverflow)
		}
	}

	return members, nil
}

// checkAmount converts a single expense or payment value, which must be at
// least one cent once rounded.
func checkAmount(field string, value float64) (int64, error) {
	cents, ok := ToCents(value)
	if !ok {
		return 0, invalid(field, fmt.Sprint(value), ErrAmountOverflow)
	}
	if cents <= 0 {
		return 0, invalid(field, fmt.Sprint(value), ErrInvalidAmount)
	}
	return cents, nil
}

// LedgerVolume sums every expense and payment in cents. Every balance the
// engine derives is bounded by this sum. Amounts or sums that do not fit in
// an int64 return ErrAmountOverflow.
func (g Group) LedgerVolume() (int64, error) {
	var volume int64
	add := func(field string, value float64) error {
		cents, ok := ToCents(value)
		if ok {
			volume, ok = addCents(volume, cents)
		}
		if !ok {
			return invalid(field, fmt.Sprint(value), ErrAmountOverflow)
		}
		return nil
	}
	for i, e := range g.Expenses {
		if err := add(fmt.Sprintf("expenses[%d].value", i), e.Value); err != nil {
			return 0, err
		}
	}
	for i, p := range g.Payments {
		if err := add(fmt.Sprintf("payments[%d].value", i), p.Value); err != nil {
			return 0, err
		}
	}
	return volume, nil
}
