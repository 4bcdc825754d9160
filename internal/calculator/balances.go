package calculator

import "sort"

// MemberBalance is a member's net position in the group.
type MemberBalance struct {
	MemberID     string
	BalanceCents int64   // Positive = group owes this member, negative = member owes the group
	Balance      float64 // BalanceCents in currency units, for display
}

// BalanceReport is the result of ComputeBalances.
type BalanceReport struct {
	// Balances holds one entry per member, in group member order.
	Balances []MemberBalance

	// Creditors are members with a positive balance, most owed first.
	Creditors []MemberBalance

	// Debtors are members with a negative balance, most owing first.
	Debtors []MemberBalance

	// CurrentUserBalance is the caller's entry, nil when the caller is not a member.
	CurrentUserBalance *MemberBalance

	// TotalCents is the sum of every expense in the group.
	TotalCents int64
}

// ComputeBalances derives every member's balance from scratch:
//
//	balance = paid as expense payer - fair share + sent as payment - received as payment
//
// A snapshot with nothing to balance (no members, or no expenses and no
// payments) yields an empty report. A zero expense total alone does not
// short-circuit: when only payments exist every share is zero and the
// balances are the payments themselves, which still sum to zero.
// Input contract violations, including amounts whose sum does not fit in
// int64 cents, return a *ValidationError and no report.
func ComputeBalances(group Group, currentUserID string) (*BalanceReport, error) {
	if _, err := group.validate(); err != nil {
		return nil, err
	}

	report := &BalanceReport{}
	if len(group.Members) == 0 || (len(group.Expenses) == 0 && len(group.Payments) == 0) {
		return report, nil
	}

	net := make(map[string]int64, len(group.Members))
	for _, e := range group.Expenses {
		cents := mustCents(e.Value)
		net[e.PayerID] += cents
		report.TotalCents += cents
	}
	for _, s := range FairShares(report.TotalCents, group.Members) {
		net[s.MemberID] -= s.Cents
	}
	for _, p := range group.Payments {
		cents := mustCents(p.Value)
		// Sender settled part of their debt; receiver is owed that much less.
		net[p.PayerID] += cents
		net[p.TargetID] -= cents
	}

	report.Balances = make([]MemberBalance, len(group.Members))
	for i, m := range group.Members {
		report.Balances[i] = newMemberBalance(m, net[m])
	}
	report.Creditors, report.Debtors = partition(report.Balances)

	for i := range report.Balances {
		if report.Balances[i].MemberID == currentUserID {
			b := report.Balances[i]
			report.CurrentUserBalance = &b
			break
		}
	}

	return report, nil
}

func newMemberBalance(memberID string, cents int64) MemberBalance {
	return MemberBalance{
		MemberID:     memberID,
		BalanceCents: cents,
		Balance:      FromCents(cents),
	}
}

// partition splits balances into creditors (descending) and debtors
// (ascending). Equal balances are ordered by member ID.
func partition(balances []MemberBalance) (creditors, debtors []MemberBalance) {
	for _, b := range balances {
		switch {
		case b.BalanceCents > 0:
			creditors = append(creditors, b)
		case b.BalanceCents < 0:
			debtors = append(debtors, b)
		}
	}

	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].BalanceCents != creditors[j].BalanceCents {
			return creditors[i].BalanceCents > creditors[j].BalanceCents
		}
		return creditors[i].MemberID < creditors[j].MemberID
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].BalanceCents != debtors[j].BalanceCents {
			return debtors[i].BalanceCents < debtors[j].BalanceCents
		}
		return debtors[i].MemberID < debtors[j].MemberID
	})
	return creditors, debtors
}
