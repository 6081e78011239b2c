package utils

import (
	"github.com/shopspring/decimal"

	"github.com/faturado/billing-engine/internal/domain"
)

var (
	oneHundred = decimal.NewFromInt(100)
	thirty     = decimal.NewFromInt(30)
)

// SplitInstallments divides a contract total into n installment amounts.
// Each installment is total/n rounded to 2 decimal places; the last one
// carries whatever remainder the rounding left, so the parts always sum back
// to the total exactly.
func SplitInstallments(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	each := total.Div(decimal.NewFromInt(int64(n))).Round(2)

	amounts := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		amounts[i] = each
		allocated = allocated.Add(each)
	}
	amounts[n-1] = total.Sub(allocated)

	return amounts
}

// CalculateOverdueInterest computes simple (non-compounding) interest on an
// overdue balance. The monthly rate is a percentage; the daily rate divides it
// by a 30-day month, matching the product's documented approximation rather
// than exact calendar day counts.
//
// Returns nil when there is nothing to charge: non-positive rate, or the due
// date has not passed. The caller is responsible for checking that the record
// is actually overdue. The result is display-only and never written back.
func CalculateOverdueInterest(amount, monthlyRate decimal.Decimal, dueDate, today domain.Date) *domain.OverdueInterest {
	if monthlyRate.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	daysOverdue := today.DaysSince(dueDate)
	if daysOverdue <= 0 {
		return nil
	}

	dailyRate := monthlyRate.Div(oneHundred).Div(thirty)
	interest := amount.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysOverdue))).Round(2)

	return &domain.OverdueInterest{
		DaysOverdue: daysOverdue,
		Interest:    interest,
		TotalAmount: amount.Add(interest),
	}
}
