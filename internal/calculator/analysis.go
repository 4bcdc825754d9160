package calculator

import "fmt"

// GroupAnalysis is one member's view of a group.
type GroupAnalysis struct {
	GroupID   string
	GroupName string
	MemberID  string

	MyBalanceCents    int64
	TotalSpentCents   int64 // Everything spent by the group
	MyTotalSpentCents int64 // Expenses this member paid

	OwedBy []Debt // Who owes this member
	OweTo  []Debt // Whom this member owes

	Categories  []CategorySummary
	Settlements []Settlement
}

// AnalyzeGroup runs the full pipeline (balances, settlements and category
// summary) and projects the result onto memberID. A memberID outside the
// group gets zero personal figures but the same group-wide totals.
func AnalyzeGroup(group Group, memberID string) (*GroupAnalysis, error) {
	report, err := ComputeBalances(group, memberID)
	if err != nil {
		return nil, err
	}
	categories, err := SummarizeCategories(group.Expenses)
	if err != nil {
		return nil, err
	}

	settlements := MinimizeSettlements(report.Balances)
	view := Perspective(settlements, memberID)

	analysis := &GroupAnalysis{
		GroupID:         group.ID,
		GroupName:       group.Name,
		MemberID:        memberID,
		TotalSpentCents: report.TotalCents,
		OwedBy:          view.OwedByOthers,
		OweTo:           view.OwedToOthers,
		Categories:      categories,
		Settlements:     settlements,
	}
	if report.CurrentUserBalance != nil {
		analysis.MyBalanceCents = report.CurrentUserBalance.BalanceCents
	}
	for _, e := range group.Expenses {
		if e.PayerID == memberID {
			analysis.MyTotalSpentCents += mustCents(e.Value)
		}
	}
	return analysis, nil
}

// GeneralAnalysis aggregates one member's analyses across groups.
type GeneralAnalysis struct {
	TotalBalanceCents  int64
	TotalOwedByMeCents int64 // Sum of what the member owes others
	TotalOwedToMeCents int64 // Sum of what others owe the member
	Categories         []CategorySummary
}

// CombineAnalyses merges per-group analyses. Category percentages are
// recomputed over the combined total. Totals that overflow int64 cents
// return ErrAmountOverflow instead of a wrapped figure.
func CombineAnalyses(analyses []*GroupAnalysis) (*GeneralAnalysis, error) {
	general := &GeneralAnalysis{}
	totals := make(map[string]int64)
	var grand int64

	ok := true
	add := func(dst *int64, cents int64) {
		if !ok {
			return
		}
		*dst, ok = addCents(*dst, cents)
	}
	for i, a := range analyses {
		if a == nil {
			continue
		}
		add(&general.TotalBalanceCents, a.MyBalanceCents)
		for _, d := range a.OweTo {
			add(&general.TotalOwedByMeCents, d.AmountCents)
		}
		for _, d := range a.OwedBy {
			add(&general.TotalOwedToMeCents, d.AmountCents)
		}
		for _, c := range a.Categories {
			add(&grand, c.TotalCents)
			if ok {
				totals[c.Category] += c.TotalCents
			}
		}
		if !ok {
			return nil, invalid(fmt.Sprintf("analyses[%d]", i), a.GroupID, ErrAmountOverflow)
		}
	}
	general.Categories = summarize(totals)
	return general, nil
}
