package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

// snapshot assembles the engine input from stored rows.
func snapshot(group *models.Group, expenses []*models.Expense, payments []*models.Payment) calculator.Group {
	g := calculator.Group{
		ID:       group.ID,
		Name:     group.Name,
		Members:  group.MemberIDs(),
		Expenses: make([]calculator.Expense, len(expenses)),
		Payments: make([]calculator.Payment, len(payments)),
	}
	for i, e := range expenses {
		g.Expenses[i] = calculator.Expense{
			ID:          e.ID,
			PayerID:     e.PayerID,
			Value:       e.Value,
			Category:    e.Category,
			Description: e.Description,
			Timestamp:   e.CreatedAt,
		}
	}
	for i, p := range payments {
		g.Payments[i] = calculator.Payment{
			ID:        p.ID,
			PayerID:   p.PayerID,
			TargetID:  p.TargetID,
			Value:     p.Value,
			Timestamp: p.CreatedAt,
		}
	}
	return g
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.Member{ID: m.ID, DisplayName: m.DisplayName, JoinedAt: m.JoinedAt}
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		OwnerID:     g.OwnerID,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Value:       e.Value,
		Category:    e.Category,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:        p.ID,
		GroupID:   p.GroupID,
		PayerID:   p.PayerID,
		TargetID:  p.TargetID,
		Value:     p.Value,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIBalances(balances []calculator.MemberBalance) []*api.MemberBalance {
	out := make([]*api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = toAPIBalance(b)
	}
	return out
}

func toAPIBalance(b calculator.MemberBalance) *api.MemberBalance {
	return &api.MemberBalance{MemberID: b.MemberID, BalanceCents: b.BalanceCents, Balance: b.Balance}
}

func toAPISettlements(settlements []calculator.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = &api.Settlement{From: s.From, To: s.To, AmountCents: s.AmountCents, Amount: s.Amount}
	}
	return out
}

func toAPIDebts(debts []calculator.Debt) []*api.Debt {
	out := make([]*api.Debt, len(debts))
	for i, d := range debts {
		out[i] = &api.Debt{MemberID: d.MemberID, AmountCents: d.AmountCents, Amount: d.Amount}
	}
	return out
}

func toAPICategories(categories []calculator.CategorySummary) []*api.CategorySummary {
	out := make([]*api.CategorySummary, len(categories))
	for i, c := range categories {
		out[i] = &api.CategorySummary{
			Category:   c.Category,
			TotalCents: c.TotalCents,
			Total:      c.Total,
			Percentage: c.Percentage,
		}
	}
	return out
}

func toAPIAnalysis(a *calculator.GroupAnalysis) *api.GroupAnalysis {
	return &api.GroupAnalysis{
		GroupID:           a.GroupID,
		GroupName:         a.GroupName,
		MyBalanceCents:    a.MyBalanceCents,
		MyBalance:         calculator.FromCents(a.MyBalanceCents),
		TotalSpentCents:   a.TotalSpentCents,
		TotalSpent:        calculator.FromCents(a.TotalSpentCents),
		MyTotalSpentCents: a.MyTotalSpentCents,
		MyTotalSpent:      calculator.FromCents(a.MyTotalSpentCents),
		OwedBy:            toAPIDebts(a.OwedBy),
		OweTo:             toAPIDebts(a.OweTo),
		Categories:        toAPICategories(a.Categories),
		Settlements:       toAPISettlements(a.Settlements),
	}
}
