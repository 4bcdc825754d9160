package calculator

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestMinimizeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []MemberBalance
		want     []Settlement
	}{
		{
			name:     "single debtor pays single creditor",
			balances: balancesOf(map[string]int64{"A": 5000, "B": -5000}),
			want:     []Settlement{{From: "B", To: "A", AmountCents: 5000, Amount: 50}},
		},
		{
			name:     "zero balance member is skipped",
			balances: balancesOf(map[string]int64{"A": 5000, "B": 0, "C": -5000}),
			want:     []Settlement{{From: "C", To: "A", AmountCents: 5000, Amount: 50}},
		},
		{
			name:     "largest creditor is paid by largest debtor first",
			balances: balancesOf(map[string]int64{"A": 7000, "B": 3000, "C": -6000, "D": -4000}),
			want: []Settlement{
				{From: "C", To: "A", AmountCents: 6000, Amount: 60},
				{From: "D", To: "B", AmountCents: 3000, Amount: 30},
				{From: "D", To: "A", AmountCents: 1000, Amount: 10},
			},
		},
		{
			name:     "ties resolved by member ID",
			balances: balancesOf(map[string]int64{"c": 667, "a": -334, "b": -333}),
			want: []Settlement{
				{From: "a", To: "c", AmountCents: 334, Amount: 3.34},
				{From: "b", To: "c", AmountCents: 333, Amount: 3.33},
			},
		},
		{
			name:     "remaining amounts are re-ranked after each transfer",
			balances: balancesOf(map[string]int64{"A": 1000, "B": 900, "X": -1500, "Y": -400}),
			want: []Settlement{
				{From: "X", To: "A", AmountCents: 1000, Amount: 10},
				{From: "X", To: "B", AmountCents: 500, Amount: 5},
				{From: "Y", To: "B", AmountCents: 400, Amount: 4},
			},
		},
		{
			name:     "nothing to settle",
			balances: balancesOf(map[string]int64{"A": 0, "B": 0}),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimizeSettlements(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MinimizeSettlements() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettlementScenarios(t *testing.T) {
	tests := []struct {
		name  string
		group Group
		want  []Settlement
	}{
		{
			name: "B pays A after one shared expense",
			group: Group{
				Members:  []string{"A", "B"},
				Expenses: []Expense{{PayerID: "A", Value: 100.00}},
			},
			want: []Settlement{{From: "B", To: "A", AmountCents: 5000, Amount: 50}},
		},
		{
			name: "C pays A when B is even",
			group: Group{
				Members:  []string{"A", "B", "C"},
				Expenses: []Expense{{PayerID: "A", Value: 100.00}, {PayerID: "B", Value: 50.00}},
			},
			want: []Settlement{{From: "C", To: "A", AmountCents: 5000, Amount: 50}},
		},
		{
			name: "earlier payment shrinks the transfer",
			group: Group{
				Members:  []string{"A", "B"},
				Expenses: []Expense{{PayerID: "A", Value: 100.00}},
				Payments: []Payment{{PayerID: "B", TargetID: "A", Value: 20.00}},
			},
			want: []Settlement{{From: "B", To: "A", AmountCents: 3000, Amount: 30}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ComputeBalances(tt.group, "")
			if err != nil {
				t.Fatalf("ComputeBalances() error = %v", err)
			}
			got := MinimizeSettlements(report.Balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("settlements = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestEngineProperties checks the engine invariants on random groups.
func TestEngineProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for run := 0; run < 200; run++ {
		group := randomGroup(r)

		report, err := ComputeBalances(group, group.Members[0])
		if err != nil {
			t.Fatalf("run %d: ComputeBalances() error = %v", run, err)
		}

		// Conservation: balances net to zero.
		var sum int64
		for _, b := range report.Balances {
			sum += b.BalanceCents
		}
		if sum != 0 {
			t.Fatalf("run %d: sum of balances = %d, want 0", run, sum)
		}

		// Share-sum exactness.
		var shareSum int64
		for _, s := range FairShares(report.TotalCents, group.Members) {
			shareSum += s.Cents
		}
		if shareSum != report.TotalCents {
			t.Fatalf("run %d: shares sum to %d, want %d", run, shareSum, report.TotalCents)
		}

		settlements := MinimizeSettlements(report.Balances)

		// Settlement correctness: applying transfers zeroes everyone.
		remaining := make(map[string]int64)
		for _, b := range report.Balances {
			remaining[b.MemberID] = b.BalanceCents
		}
		for _, s := range settlements {
			if s.AmountCents <= 0 {
				t.Fatalf("run %d: non-positive transfer %+v", run, s)
			}
			remaining[s.To] -= s.AmountCents
			remaining[s.From] += s.AmountCents
		}
		for member, cents := range remaining {
			if cents != 0 {
				t.Fatalf("run %d: %s left with %d after settling", run, member, cents)
			}
		}

		// Count bound.
		if parties := len(report.Creditors) + len(report.Debtors); parties > 0 && len(settlements) > parties-1 {
			t.Fatalf("run %d: %d settlements for %d parties", run, len(settlements), parties)
		}

		// Determinism.
		again, err := ComputeBalances(group, group.Members[0])
		if err != nil {
			t.Fatalf("run %d: second ComputeBalances() error = %v", run, err)
		}
		if !reflect.DeepEqual(report, again) {
			t.Fatalf("run %d: reports differ between identical calls", run)
		}
		if !reflect.DeepEqual(settlements, MinimizeSettlements(again.Balances)) {
			t.Fatalf("run %d: settlements differ between identical calls", run)
		}
	}
}

func TestPerspective(t *testing.T) {
	settlements := []Settlement{
		{From: "C", To: "A", AmountCents: 6000, Amount: 60},
		{From: "D", To: "A", AmountCents: 1000, Amount: 10},
		{From: "D", To: "B", AmountCents: 3000, Amount: 30},
	}

	view := Perspective(settlements, "A")
	if len(view.OwedByOthers) != 2 || len(view.OwedToOthers) != 0 {
		t.Fatalf("A view = %+v, want 2 incoming and 0 outgoing", view)
	}
	if view.OwedByOthers[0].MemberID != "C" || view.OwedByOthers[0].AmountCents != 6000 {
		t.Errorf("A first incoming = %+v, want C 6000", view.OwedByOthers[0])
	}

	view = Perspective(settlements, "D")
	if len(view.OwedByOthers) != 0 || len(view.OwedToOthers) != 2 {
		t.Fatalf("D view = %+v, want 0 incoming and 2 outgoing", view)
	}
	if view.OwedToOthers[1].MemberID != "B" || view.OwedToOthers[1].Amount != 30 {
		t.Errorf("D second outgoing = %+v, want B 30", view.OwedToOthers[1])
	}

	view = Perspective(settlements, "nobody")
	if view.OwedByOthers != nil || view.OwedToOthers != nil {
		t.Errorf("non-participant view = %+v, want empty", view)
	}
}

func randomGroup(r *rand.Rand) Group {
	n := r.IntN(8) + 1
	g := Group{ID: "g"}
	for i := 0; i < n; i++ {
		g.Members = append(g.Members, fmt.Sprintf("member-%02d", r.IntN(100)*10+i))
	}
	for i := r.IntN(15) + 1; i > 0; i-- {
		g.Expenses = append(g.Expenses, Expense{
			PayerID:  g.Members[r.IntN(n)],
			Value:    float64(r.IntN(50000)+1) / 100,
			Category: []string{"food", "Travel", "", "rent"}[r.IntN(4)],
		})
	}
	if n > 1 {
		for i := r.IntN(4); i > 0; i-- {
			from := r.IntN(n)
			to := (from + 1 + r.IntN(n-1)) % n
			g.Payments = append(g.Payments, Payment{
				PayerID:  g.Members[from],
				TargetID: g.Members[to],
				Value:    float64(r.IntN(10000)+1) / 100,
			})
		}
	}
	return g
}

func balancesOf(m map[string]int64) []MemberBalance {
	var out []MemberBalance
	for id, cents := range m {
		out = append(out, newMemberBalance(id, cents))
	}
	return out
}
