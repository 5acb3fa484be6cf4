package transaction

import (
	"fmt"

	"github.com/google/uuid"

	"meusaldo/internal/domain/caldate"
)

// ExpandRecurrence turns a recurring create request into the concrete dated
// records of its installment series. Pure: no I/O, no side effects beyond
// generating the shared recurrence ID.
//
// Installment i (0-based) is dated i calendar months after the start date,
// keeping the start's day of month clamped to the target month's last valid
// day. The clamp always works from the original day, so a day-31 start
// shortens only in short months: Jan 31, Feb 29, Mar 31.
//
// When the request has a due date, each installment's due date keeps the
// original due day of month, placed at the same month offset from the
// installment's date as in the request, again clamped.
//
// N=1 is legal and yields a single "(1/1)" record; uniform handling is
// intentional so callers never branch on series length.
func ExpandRecurrence(params CreateParams) ([]Transaction, error) {
	if !params.IsRecurring {
		return nil, ErrNotRecurring
	}
	if params.Installments < 1 {
		return nil, ErrInvalidInstallments
	}
	if params.Date.IsZero() {
		return nil, ErrMissingDate
	}

	recurrenceID := uuid.NewString()
	total := params.Installments
	startIndex := params.Date.MonthIndex()

	hasDueDate := params.DueDate != nil && !params.DueDate.IsZero()
	var dueDay, dueMonthOffset int
	if hasDueDate {
		dueDay = params.DueDate.Day
		dueMonthOffset = params.DueDate.MonthIndex() - startIndex
	}

	series := make([]Transaction, 0, total)
	for i := 0; i < total; i++ {
		t := params.base()
		t.Description = fmt.Sprintf("%s (%d/%d)", params.Description, i+1, total)
		t.Date = caldate.OfMonthIndex(startIndex+i, params.Date.Day)
		t.IsRecurring = true
		t.Installments = total
		t.RecurrenceID = recurrenceID

		if hasDueDate {
			due := caldate.OfMonthIndex(t.Date.MonthIndex()+dueMonthOffset, dueDay)
			t.DueDate = &due
		} else {
			t.DueDate = nil
		}

		series = append(series, t)
	}

	return series, nil
}
