package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPackEquivalent(t *testing.T) {
	p := Product{TingiPerPack: 5}

	require.Equal(t, 3.0, p.PackEquivalent(3, false))
	require.InDelta(t, 2.4, p.PackEquivalent(12, true), 1e-9)

	// Unset ratio falls back to 1:1
	zero := Product{}
	require.Equal(t, 7.0, zero.PackEquivalent(7, true))
}

func TestIsLowStock(t *testing.T) {
	require.True(t, (&Product{Stock: 3, ReorderLevel: 5}).IsLowStock())
	require.True(t, (&Product{Stock: 5, ReorderLevel: 5}).IsLowStock())
	require.False(t, (&Product{Stock: 5.1, ReorderLevel: 5}).IsLowStock())
}

func TestExpiryChecks(t *testing.T) {
	require.False(t, (&Product{}).IsNearExpiry())
	require.False(t, (&Product{}).IsExpired())

	soon := time.Now().AddDate(0, 0, 10)
	require.True(t, (&Product{ExpiryDate: &soon}).IsNearExpiry())
	require.False(t, (&Product{ExpiryDate: &soon}).IsExpired())

	far := time.Now().AddDate(0, 0, 90)
	require.False(t, (&Product{ExpiryDate: &far}).IsNearExpiry())

	gone := time.Now().AddDate(0, 0, -1)
	require.True(t, (&Product{ExpiryDate: &gone}).IsExpired())
}

func TestProfitMargin(t *testing.T) {
	require.Equal(t, 0.0, (&Product{UnitPrice: 10}).ProfitMargin())
	require.InDelta(t, 25.0, (&Product{UnitPrice: 10, CostPrice: 8}).ProfitMargin(), 1e-9)
}
