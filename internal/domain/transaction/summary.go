package transaction

import (
	"sort"

	"meusaldo/internal/domain/account"
	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/category"
)

// FallbackCategoryLabel groups debits whose category reference is missing or
// dangling. Category deletion does not cascade, so this is an expected
// condition, not an error.
const FallbackCategoryLabel = "Sem Categoria"

// CategoryTotal is one slice of the expenses-by-category breakdown.
// Order is unspecified; sorting for display is a presentation concern.
type CategoryTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// FilterByMonth returns the transactions whose effective date falls in the
// given calendar month (month is 1-12). The match is on date components,
// never on wall-clock comparisons.
func FilterByMonth(transactions []Transaction, year, month int) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range transactions {
		eff := t.EffectiveDate()
		if eff.Year == year && eff.Month == month {
			out = append(out, t)
		}
	}
	return out
}

// ComputeBalance returns the overall balance as of the given date: the sum
// of all account initial balances, plus every credit, minus every debit that
// is either marked paid or whose effective date has passed.
//
// The asymmetry is deliberate: credits count unconditionally (income is
// assumed received on schedule), while an unpaid debit only counts once it
// is overdue, as a realized liability.
func ComputeBalance(accounts []account.Account, transactions []Transaction, asOf caldate.Date) float64 {
	balance := 0.0
	for _, acc := range accounts {
		balance += acc.InitialBalance
	}
	for _, t := range transactions {
		switch t.Type {
		case TypeCredit:
			balance += t.Amount
		case TypeDebit:
			if t.IsPaid || !t.EffectiveDate().After(asOf) {
				balance -= t.Amount
			}
		}
	}
	return balance
}

// MonthlyIncome sums the credit amounts in the given month.
func MonthlyIncome(transactions []Transaction, year, month int) float64 {
	return sumByType(FilterByMonth(transactions, year, month), TypeCredit)
}

// MonthlyExpenses sums the debit amounts in the given month.
func MonthlyExpenses(transactions []Transaction, year, month int) float64 {
	return sumByType(FilterByMonth(transactions, year, month), TypeDebit)
}

// ExpensesByCategory groups the month's debits by category name, summing
// amounts per group. Debits referencing an unknown category land under
// FallbackCategoryLabel with their full amount.
func ExpensesByCategory(transactions []Transaction, categories []category.Category, year, month int) []CategoryTotal {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	totals := make(map[string]float64)
	var order []string
	for _, t := range FilterByMonth(transactions, year, month) {
		if t.Type != TypeDebit {
			continue
		}
		label, ok := names[t.CategoryID]
		if !ok || label == "" {
			label = FallbackCategoryLabel
		}
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += t.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, label := range order {
		out = append(out, CategoryTotal{Label: label, Total: totals[label]})
	}
	return out
}

// RecentTransactions returns the transactions effective on or before the
// last day of asOf's month, newest first, truncated to limit. The sort is
// stable: same-day records keep their input order.
func RecentTransactions(transactions []Transaction, asOf caldate.Date, limit int) []Transaction {
	cutoff := asOf.EndOfMonth()

	recent := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.EffectiveDate().After(cutoff) {
			recent = append(recent, t)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EffectiveDate().After(recent[j].EffectiveDate())
	})

	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

func sumByType(transactions []Transaction, txType string) float64 {
	sum := 0.0
	for _, t := range transactions {
		if t.Type == txType {
			sum += t.Amount
		}
	}
	return sum
}
