package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReceiptNumberFormat(t *testing.T) {
	day := time.Date(2025, 8, 31, 14, 30, 0, 0, time.UTC)
	require.Equal(t, "RCT-20250831-0001", ReceiptNumber(day, 1))
	require.Equal(t, "RCT-20250831-0042", ReceiptNumber(day, 42))
	require.Equal(t, "RCT-20250831-9999", ReceiptNumber(day, 9999))
}
