package reminder

import (
	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/transaction"
)

// DebitsDueTomorrow returns the user's unpaid debits whose due date is
// exactly one day after today. The one-day horizon is fixed; only creditor
// reminders are configurable.
func DebitsDueTomorrow(transactions []transaction.Transaction, today caldate.Date) []transaction.Transaction {
	tomorrow := today.AddDays(1)
	var out []transaction.Transaction
	for _, t := range transactions {
		if t.Type != transaction.TypeDebit || t.IsPaid || t.DueDate == nil {
			continue
		}
		if *t.DueDate == tomorrow {
			out = append(out, t)
		}
	}
	return out
}

// CreditsToRemind returns unpaid credits due exactly daysBefore days from
// today that carry a creditor phone number, so a payment reminder can be
// delivered to the creditor directly.
func CreditsToRemind(transactions []transaction.Transaction, today caldate.Date, daysBefore int) []transaction.Transaction {
	if daysBefore < 1 {
		daysBefore = 1
	}
	trigger := today.AddDays(daysBefore)
	var out []transaction.Transaction
	for _, t := range transactions {
		if t.Type != transaction.TypeCredit || t.IsPaid || t.DueDate == nil {
			continue
		}
		if t.CreditorPhone == "" {
			continue
		}
		if *t.DueDate == trigger {
			out = append(out, t)
		}
	}
	return out
}
