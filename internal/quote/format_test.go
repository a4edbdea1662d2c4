package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"nil", nil, "N/A"},
		{"lakh crore", f64(1.68e12), "₹1.68L Cr"},
		{"lakh crore boundary", f64(1e12), "₹1.00L Cr"},
		{"large market cap", f64(19_960_000_000_000), "₹19.96L Cr"},
		// 1e9..1e12 drops the decimals even though it shares the crore divisor.
		{"thousands of crore", f64(5e9), "₹500 Cr"},
		{"thousands of crore boundary", f64(1e9), "₹100 Cr"},
		{"crore", f64(5e7), "₹5.00 Cr"},
		{"crore boundary", f64(1e7), "₹1.00 Cr"},
		{"lakh", f64(2.5e5), "₹2.50L"},
		{"lakh boundary", f64(1e5), "₹1.00L"},
		{"thousands", f64(54321.4), "₹54,321"},
		{"small", f64(999), "₹999"},
		{"zero", f64(0), "₹0"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatVolume(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   *int64
		want string
	}{
		{nil, "N/A"},
		{i64(12_500_000), "12.50M"},
		{i64(1_000_000), "1.00M"},
		{i64(45_300), "45.3K"},
		{i64(1_000), "1.0K"},
		{i64(500), "500"},
		{i64(0), "0"},
	}
	for _, tt := range tests {
		tt := tt
		require.Equal(t, tt.want, FormatVolume(tt.in))
	}
}
