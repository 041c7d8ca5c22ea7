package money

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "100", want: 10000},
		{in: "33.34", want: 3334},
		{in: " 0.5 ", want: 50},
		{in: "-12.05", want: -1205},
		{in: "0.005", want: 1},
		{in: "0.004", want: 0},
		{in: "2.675", want: 268},
		{in: "-0.015", want: -2},
		{in: "1e2", wantErr: true},
		{in: "1E-2", wantErr: true},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1,000.00", wantErr: true},
		{in: "$5", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_HugeExponent(t *testing.T) {
	start := time.Now()
	_, err := Parse("1e10000000")
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Less(t, time.Since(start), time.Second)
	assert.Contains(t, err.Error(), `"1e10000000"`)
	assert.Less(t, len(err.Error()), 100)

	_, err = Parse(strings.Repeat("9", 1000))
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Less(t, len(err.Error()), 100)
}

func TestFromDecimal_ExponentBounds(t *testing.T) {
	_, err := FromDecimal(decimal.New(1, 10000000))
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Less(t, len(err.Error()), 100)

	got, err := FromDecimal(decimal.New(5, -10000000))
	require.NoError(t, err)
	assert.Equal(t, Money(0), got)

	got, err = FromDecimal(decimal.New(1, 16))
	require.NoError(t, err)
	assert.Equal(t, Money(1_000_000_000_000_000_000), got)

	got, err = FromDecimal(decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, Money(0), got)
}

func TestFromFloat(t *testing.T) {
	got, err := FromFloat(19.999)
	require.NoError(t, err)
	assert.Equal(t, Money(2000), got)

	_, err = FromFloat(posInf())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}

func TestMulFrac(t *testing.T) {
	assert.Equal(t, Money(3333), Money(10000).MulFrac(1, 3))
	assert.Equal(t, Money(6667), Money(10000).MulFrac(2, 3))
	// ties round away from zero
	assert.Equal(t, Money(3), Money(5).MulFrac(1, 2))
	assert.Equal(t, Money(-3), Money(-5).MulFrac(1, 2))
	assert.Panics(t, func() { Money(1).MulFrac(1, 0) })
}

func TestDistribute(t *testing.T) {
	ones := func(n int) []decimal.Decimal {
		w := make([]decimal.Decimal, n)
		for i := range w {
			w[i] = decimal.NewFromInt(1)
		}
		return w
	}

	t.Run("three way hundred dollars", func(t *testing.T) {
		parts, err := Distribute(MustParse("100.00"), ones(3))
		require.NoError(t, err)
		assert.Equal(t, []Money{3334, 3333, 3333}, parts)
	})

	t.Run("negative total keeps sign", func(t *testing.T) {
		parts, err := Distribute(Money(-100), ones(3))
		require.NoError(t, err)
		assert.Equal(t, []Money{-34, -33, -33}, parts)
	})

	t.Run("zero weight gets nothing", func(t *testing.T) {
		w := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1)}
		parts, err := Distribute(Money(101), w)
		require.NoError(t, err)
		assert.Equal(t, []Money{0, 51, 50}, parts)
	})

	t.Run("rejects bad weights", func(t *testing.T) {
		_, err := Distribute(Money(100), nil)
		assert.ErrorIs(t, err, ErrInvalidWeights)
		_, err = Distribute(Money(100), []decimal.Decimal{decimal.Zero})
		assert.ErrorIs(t, err, ErrInvalidWeights)
		_, err = Distribute(Money(100), []decimal.Decimal{decimal.NewFromInt(-1), decimal.NewFromInt(2)})
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("random weights always reconcile", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 500; i++ {
			total := Money(rng.Int63n(10_000_000))
			w := make([]decimal.Decimal, 1+rng.Intn(12))
			for j := range w {
				w[j] = decimal.New(1+rng.Int63n(5000), -int32(rng.Intn(3)))
			}
			parts, err := Distribute(total, w)
			require.NoError(t, err)
			assert.Equal(t, total, Sum(parts...))
		}
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "33.34", Money(3334).String())
	assert.Equal(t, "-0.05", Money(-5).String())
	assert.Equal(t, "$100.00", Money(10000).Display())
	assert.Equal(t, "-$0.50", Money(-50).Display())
	assert.Equal(t, 1, Money(2).Cmp(1))
	assert.Equal(t, 0, Money(2).Cmp(2))
	assert.Equal(t, -1, Money(1).Cmp(2))
}
