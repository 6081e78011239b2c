package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturado/billing-engine/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{
			name:  "even split",
			total: "1200",
			n:     3,
			want:  []string{"400", "400", "400"},
		},
		{
			name:  "remainder lands on last installment",
			total: "1000",
			n:     3,
			want:  []string{"333.33", "333.33", "333.34"},
		},
		{
			name:  "single installment",
			total: "2500",
			n:     1,
			want:  []string{"2500"},
		},
		{
			name:  "cents split",
			total: "100.01",
			n:     2,
			want:  []string{"50.01", "50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitInstallments(d(tt.total), tt.n)
			require.Len(t, got, len(tt.want))

			sum := decimal.Zero
			for i, amount := range got {
				assert.True(t, amount.Equal(d(tt.want[i])),
					"installment %d: got %s, want %s", i+1, amount, tt.want[i])
				sum = sum.Add(amount)
			}
			assert.True(t, sum.Equal(d(tt.total)), "installments must sum to the total, got %s", sum)
		})
	}
}

func TestSplitInstallments_InvalidCount(t *testing.T) {
	assert.Nil(t, SplitInstallments(d("100"), 0))
	assert.Nil(t, SplitInstallments(d("100"), -1))
}

func TestCalculateOverdueInterest(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		rate        string
		dueDate     domain.Date
		today       domain.Date
		wantDays    int
		wantInterest string
		wantTotal   string
		wantNil     bool
	}{
		{
			name:        "ten days overdue at 3 percent",
			amount:      "1000",
			rate:        "3",
			dueDate:     domain.NewDate(2024, 5, 10),
			today:       domain.NewDate(2024, 5, 20),
			wantDays:    10,
			wantInterest: "10",
			wantTotal:   "1010",
		},
		{
			name:        "one day overdue at 1.5 percent",
			amount:      "2500",
			rate:        "1.5",
			dueDate:     domain.NewDate(2024, 6, 1),
			today:       domain.NewDate(2024, 6, 2),
			wantDays:    1,
			wantInterest: "1.25",
			wantTotal:   "2501.25",
		},
		{
			name:    "due today charges nothing",
			amount:  "1000",
			rate:    "3",
			dueDate: domain.NewDate(2024, 5, 10),
			today:   domain.NewDate(2024, 5, 10),
			wantNil: true,
		},
		{
			name:    "not yet due",
			amount:  "1000",
			rate:    "3",
			dueDate: domain.NewDate(2024, 5, 10),
			today:   domain.NewDate(2024, 5, 1),
			wantNil: true,
		},
		{
			name:    "zero rate",
			amount:  "1000",
			rate:    "0",
			dueDate: domain.NewDate(2024, 5, 10),
			today:   domain.NewDate(2024, 5, 20),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOverdueInterest(d(tt.amount), d(tt.rate), tt.dueDate, tt.today)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantDays, got.DaysOverdue)
			assert.True(t, got.Interest.Equal(d(tt.wantInterest)),
				"interest: got %s, want %s", got.Interest, tt.wantInterest)
			assert.True(t, got.TotalAmount.Equal(d(tt.wantTotal)),
				"total: got %s, want %s", got.TotalAmount, tt.wantTotal)
		})
	}
}
