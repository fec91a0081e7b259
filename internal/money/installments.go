package money

import (
	"errors"
	"time"
)

// Period is the spacing between consecutive installments.
type Period string

const (
	PeriodWeeks  Period = "weeks"
	PeriodMonths Period = "months"
)

// MinInstallments is the smallest installment count a plan may have.
const MinInstallments = 2

var (
	ErrInstallmentCount  = errors.New("money: installments must be at least 2")
	ErrInstallmentTotal  = errors.New("money: installment total must be positive")
	ErrInstallmentSmall  = errors.New("money: installment total smaller than the count")
	ErrInstallmentPeriod = errors.New("money: unknown installment period")
)

// Installment is one scheduled slice of a plan.
type Installment struct {
	Number int       `json:"number"`
	Amount int64     `json:"amount"`
	Date   time.Time `json:"date"`
}

// SplitInstallments divides total centavos into count parts. Every part
// gets total/count and the leftover centavos go to the first part, so the
// parts always sum to total and the first is never smaller than the rest.
// total must be at least count centavos so that no part is zero.
func SplitInstallments(total int64, count int) ([]int64, error) {
	if count < MinInstallments {
		return nil, ErrInstallmentCount
	}
	if total <= 0 {
		return nil, ErrInstallmentTotal
	}
	if total < int64(count) {
		return nil, ErrInstallmentSmall
	}

	base := total / int64(count)
	remainder := total - base*int64(count)

	parts := make([]int64, count)
	for i := range parts {
		parts[i] = base
	}
	parts[0] += remainder
	return parts, nil
}

// InstallmentSchedule returns count dates starting at origin and spaced by
// period. Monthly steps keep the origin's day, clamped to the last day of
// shorter months (Jan 31 -> Feb 28 -> Mar 31).
func InstallmentSchedule(origin time.Time, count int, period Period) ([]time.Time, error) {
	if count < 1 {
		return nil, ErrInstallmentCount
	}
	dates := make([]time.Time, count)
	for i := range dates {
		switch period {
		case PeriodWeeks:
			dates[i] = origin.AddDate(0, 0, 7*i)
		case PeriodMonths:
			dates[i] = AddMonthsClamped(origin, i)
		default:
			return nil, ErrInstallmentPeriod
		}
	}
	return dates, nil
}

// BuildPlan combines SplitInstallments and InstallmentSchedule.
func BuildPlan(total int64, count int, period Period, origin time.Time) ([]Installment, error) {
	amounts, err := SplitInstallments(total, count)
	if err != nil {
		return nil, err
	}
	dates, err := InstallmentSchedule(origin, count, period)
	if err != nil {
		return nil, err
	}

	plan := make([]Installment, count)
	for i := range plan {
		plan[i] = Installment{Number: i + 1, Amount: amounts[i], Date: dates[i]}
	}
	return plan, nil
}

// AddMonthsClamped adds n calendar months to t without overflowing into
// the following month.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
