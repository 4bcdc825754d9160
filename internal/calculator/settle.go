package calculator

// Settlement is a suggested transfer from a debtor to a creditor.
type Settlement struct {
	From        string // Member who owes
	To          string // Member who is owed
	AmountCents int64
	Amount      float64
}

// MinimizeSettlements produces transfers that bring every balance to zero.
//
// Greedy matching: the largest remaining creditor is paired with the largest
// remaining debtor and the smaller of the two amounts moves between them.
// Each step zeroes at least one party, so the result has at most
// creditors+debtors-1 entries. It is not guaranteed to be the global minimum.
// Balances that do not sum to zero leave the surplus side unmatched.
func MinimizeSettlements(balances []MemberBalance) []Settlement {
	creditors, debtors := partition(balances)

	// Remaining amounts, both positive.
	credit := make([]int64, len(creditors))
	for i, c := range creditors {
		credit[i] = c.BalanceCents
	}
	debt := make([]int64, len(debtors))
	for i, d := range debtors {
		debt[i] = -d.BalanceCents
	}

	var settlements []Settlement
	for {
		ci := largest(creditors, credit)
		di := largest(debtors, debt)
		if ci < 0 || di < 0 {
			break
		}

		amount := min(credit[ci], debt[di])
		settlements = append(settlements, Settlement{
			From:        debtors[di].MemberID,
			To:          creditors[ci].MemberID,
			AmountCents: amount,
			Amount:      FromCents(amount),
		})
		credit[ci] -= amount
		debt[di] -= amount
	}

	return settlements
}

// largest returns the index of the party with the biggest non-zero remaining
// amount, preferring the lower member ID on ties, or -1 when all are settled.
func largest(parties []MemberBalance, remaining []int64) int {
	best := -1
	for i, r := range remaining {
		if r <= 0 {
			continue
		}
		if best < 0 || r > remaining[best] ||
			(r == remaining[best] && parties[i].MemberID < parties[best].MemberID) {
			best = i
		}
	}
	return best
}

// Debt is an amount owed between the viewing member and another member.
type Debt struct {
	MemberID    string
	AmountCents int64
	Amount      float64
}

// MemberView splits settlements by direction relative to one member.
type MemberView struct {
	OwedByOthers []Debt // Others pay this member
	OwedToOthers []Debt // This member pays others
}

// Perspective returns the settlements that involve memberID.
func Perspective(settlements []Settlement, memberID string) MemberView {
	var view MemberView
	for _, s := range settlements {
		switch memberID {
		case s.To:
			view.OwedByOthers = append(view.OwedByOthers, Debt{MemberID: s.From, AmountCents: s.AmountCents, Amount: s.Amount})
		case s.From:
			view.OwedToOthers = append(view.OwedToOthers, Debt{MemberID: s.To, AmountCents: s.AmountCents, Amount: s.Amount})
		}
	}
	return view
}
