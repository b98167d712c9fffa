package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActivityQueryOnlyCountsApprovedVouchers(t *testing.T) {
	query, args := activityQuery(1, 42, Window{})

	require.Contains(t, query, "v.status='APPROVED'")
	require.NotContains(t, query, "v.date")
	require.Equal(t, []any{int64(1), int64(42)}, args)
}

func TestActivityQueryWindowBoundsAreInclusive(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	query, args := activityQuery(1, 42, Window{From: &from, To: &to})

	require.Contains(t, query, "v.date >= $3")
	require.Contains(t, query, "v.date <= $4")
	require.NotContains(t, query, "v.date > $")
	require.NotContains(t, query, "v.date < $")
	require.Equal(t, []any{int64(1), int64(42), from, to}, args)
}

func TestActivityQueryHalfOpenWindows(t *testing.T) {
	at := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	query, args := activityQuery(7, 9, Window{To: &at})
	require.Contains(t, query, "v.date <= $3")
	require.False(t, strings.Contains(query, "v.date >="))
	require.Equal(t, []any{int64(7), int64(9), at}, args)

	query, args = activityQuery(7, 9, Window{From: &at})
	require.Contains(t, query, "v.date >= $3")
	require.False(t, strings.Contains(query, "v.date <="))
	require.Equal(t, []any{int64(7), int64(9), at}, args)
}
