package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebtStatus(t *testing.T) {
	require.Equal(t, DebtPending, DebtStatus(0, 500))
	require.Equal(t, DebtPartial, DebtStatus(0.01, 500))
	require.Equal(t, DebtPartial, DebtStatus(499.99, 500))
	require.Equal(t, DebtPaid, DebtStatus(500, 500))
	require.Equal(t, DebtPaid, DebtStatus(600, 500))
}

func TestRemainingBalance(t *testing.T) {
	d := Debt{TotalAmount: 500, PaidAmount: 120}
	require.Equal(t, 380.0, d.RemainingBalance())
}

func TestDaysOverdue(t *testing.T) {
	now := time.Now()

	noDue := Debt{Status: DebtPending}
	require.Equal(t, 0, noDue.DaysOverdue(now))

	future := now.AddDate(0, 0, 5)
	notYet := Debt{Status: DebtPending, DueDate: &future}
	require.Equal(t, 0, notYet.DaysOverdue(now))

	past := now.Add(-49 * time.Hour) // just past 2 days, ceiling = 3
	overdue := Debt{Status: DebtPartial, DueDate: &past}
	require.Equal(t, 3, overdue.DaysOverdue(now))

	// Settled debts are never overdue
	paid := Debt{Status: DebtPaid, DueDate: &past}
	require.Equal(t, 0, paid.DaysOverdue(now))
}

func TestAgingCategoryBoundaries(t *testing.T) {
	now := time.Now()

	at := func(daysAgo int) *Debt {
		d := Debt{}
		d.CreatedAt = now.AddDate(0, 0, -daysAgo)
		return &d
	}

	require.Equal(t, Aging0To30, at(1).AgingCategory(now))
	require.Equal(t, Aging0To30, at(30).AgingCategory(now))
	require.Equal(t, Aging31To60, at(31).AgingCategory(now))
	require.Equal(t, Aging31To60, at(60).AgingCategory(now))
	require.Equal(t, Aging60Plus, at(61).AgingCategory(now))
	require.Equal(t, Aging60Plus, at(90).AgingCategory(now))
}
