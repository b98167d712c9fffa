package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRound(t *testing.T) {
	require.Equal(t, "37.14", Round(decimal.RequireFromString("37.1429")).StringFixed(2))
	require.Equal(t, "37.15", Round(decimal.RequireFromString("37.145")).StringFixed(2))
	require.Equal(t, "-0.01", Round(decimal.RequireFromString("-0.005")).StringFixed(2))
}

func TestRatio(t *testing.T) {
	got := Ratio(decimal.NewFromInt(1), decimal.NewFromInt(3))
	require.Equal(t, "0.3333", got.StringFixed(4))

	require.True(t, Ratio(decimal.NewFromInt(5), decimal.Zero).IsZero())
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(25), decimal.NewFromInt(70))
	require.Equal(t, "35.71", got.StringFixed(2))

	require.True(t, Percent(decimal.NewFromInt(5), decimal.Zero).IsZero())
}
