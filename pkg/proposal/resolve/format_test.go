package resolve

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCurrencyToken(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"{Total amount}", true},
		{"{Price1}", true},
		{"{PRICE}", true},
		{"{amount_due}", true},
		{"{Additional}", true},
		{"{additional}", false},
		{"{client_name}", false},
		{"{date}", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCurrencyToken(tt.key))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"currency float", "{Total amount}", 1234.5, "$ 1,234.50"},
		{"currency int", "{Additional}", 300, "$ 300.00"},
		{"currency millions", "{price}", 1234567.891, "$ 1,234,567.89"},
		{"currency zero", "{price}", 0, "$ 0.00"},
		{"currency preformatted", "{Total amount}", "$ 1,234.50", "$ 1,234.50"},
		{"currency free text", "{Price1}", "included", "included"},
		{"text", "{client_name}", "Acme Ltd", "Acme Ltd"},
		{"nil text", "{client_name}", nil, ""},
		{"int", "{users}", 12, "12"},
		{"float", "{ratio}", 2.5, "2.5"},
		{"date", "{date}", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "05/03/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$ 0.00"},
		{0.125, "$ 0.12"},
		{0.375, "$ 0.38"},
		{1234.625, "$ 1,234.62"},
		{999.995, "$ 999.99"},
		{1e6, "$ 1,000,000.00"},
		{-0.5, "$ -0.50"},
		{-1234.5, "$ -1,234.50"},
		{-0.001, "$ 0.00"},
		{MaxAmount, "$ 1,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		got, err := FormatCurrency(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e19, math.Nextafter(MaxAmount, math.Inf(1))} {
		_, err := FormatCurrency(bad)
		assert.True(t, IsFormatError(err), bad)
	}
}

func TestFormatValueIdempotentForCurrency(t *testing.T) {
	once, err := FormatValue("{Total amount}", 98765.4)
	require.NoError(t, err)
	twice, err := FormatValue("{Total amount}", once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFormatValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"currency nil", "{Total amount}", nil},
		{"currency bool", "{Price1}", true},
		{"currency slice", "{Price1}", []int{1}},
		{"currency NaN", "{Price1}", math.NaN()},
		{"currency infinity", "{Additional}", math.Inf(1)},
		{"currency negative infinity", "{Price1}", math.Inf(-1)},
		{"currency 1e19", "{Total amount}", 1e19},
		{"currency max uint64", "{Price1}", uint64(math.MaxUint64)},
		{"currency max int64", "{Price1}", int64(math.MaxInt64)},
		{"currency date", "{Price1}", time.Now()},
		{"text map", "{client_name}", map[string]string{}},
		{"text bool", "{client_name}", false},
		{"text NaN", "{ratio}", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatValue(tt.key, tt.value)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.key, fe.Token)
		})
	}
}

func TestTokenMapValidate(t *testing.T) {
	assert.NoError(t, TokenMap{"{a}": 1, "{Total amount}": 2}.Validate())

	for _, bad := range []string{"a", "{}", "{a", "a}", "{a{b}}", ""} {
		err := TokenMap{bad: 1}.Validate()
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestTokenMapKeysSorted(t *testing.T) {
	m := TokenMap{"{b}": 1, "{a}": 2, "{Total amount}": 3}
	assert.Equal(t, []string{"{Total amount}", "{a}", "{b}"}, m.Keys())
}
