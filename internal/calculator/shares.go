package calculator

import "sort"

// Share is one member's fair part of the group total.
type Share struct {
	MemberID string
	Cents    int64
}

// FairShares splits totalCents evenly across members. The remainder of the
// integer division goes one cent at a time to members in lexicographic order,
// so the shares always add up to totalCents and do not depend on join order.
// The result is sorted by member ID.
func FairShares(totalCents int64, members []string) []Share {
	if len(members) == 0 {
		return nil
	}

	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)

	shares := make([]Share, len(sorted))
	if totalCents == 0 {
		for i, m := range sorted {
			shares[i] = Share{MemberID: m}
		}
		return shares
	}

	n := int64(len(sorted))
	base := totalCents / n
	remainder := totalCents % n
	for i, m := range sorted {
		cents := base
		if int64(i) < remainder {
			cents++
		}
		shares[i] = Share{MemberID: m, Cents: cents}
	}
	return shares
}
