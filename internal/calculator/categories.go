package calculator

import (
	"fmt"
	"sort"
	"strings"
)

// Uncategorized collects expenses without a category label.
const Uncategorized = "uncategorized"

// CategorySummary is the spend in one category.
type CategorySummary struct {
	Category   string
	TotalCents int64
	Total      float64
	Percentage float64 // Share of the grand total, 0-100, two decimals
}

// NormalizeCategory lower-cases and trims a label; blank labels map to Uncategorized.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return Uncategorized
	}
	return c
}

// SummarizeCategories groups expense spend by normalized category, sorted by
// total descending. It returns an empty slice when nothing was spent.
func SummarizeCategories(expenses []Expense) ([]CategorySummary, error) {
	totals := make(map[string]int64)
	var grand int64
	for i, e := range expenses {
		field := fmt.Sprintf("expenses[%d].value", i)
		cents, err := checkAmount(field, e.Value)
		if err != nil {
			return nil, err
		}
		var ok bool
		if grand, ok = addCents(grand, cents); !ok {
			return nil, invalid(field, fmt.Sprint(e.Value), ErrAmountOverflow)
		}
		totals[NormalizeCategory(e.Category)] += cents
	}
	return summarize(totals), nil
}

func summarize(totals map[string]int64) []CategorySummary {
	var grand int64
	for _, cents := range totals {
		grand += cents
	}
	if grand == 0 {
		return []CategorySummary{}
	}

	summaries := make([]CategorySummary, 0, len(totals))
	for category, cents := range totals {
		summaries = append(summaries, CategorySummary{
			Category:   category,
			TotalCents: cents,
			Total:      FromCents(cents),
			Percentage: percentOf(cents, grand),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalCents != summaries[j].TotalCents {
			return summaries[i].TotalCents > summaries[j].TotalCents
		}
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}
