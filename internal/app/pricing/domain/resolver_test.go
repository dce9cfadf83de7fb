package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NoGrouping(t *testing.T) {
	vipFirst := []string{"vip", "basic"}

	t.Run("best ranked price list wins", func(t *testing.T) {
		basic := testPrice(1, "basic", "100")
		vip := testPrice(2, "vip", "80")

		got, err := Resolve([]*Price{basic, vip}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, vip, got)
		assert.Equal(t, "80.00", got.PriceWithTax().String())
	})

	t.Run("rank beats amount", func(t *testing.T) {
		basic := testPrice(1, "basic", "10")
		vip := testPrice(2, "vip", "80")

		got, err := Resolve([]*Price{basic, vip}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, vip, got)
	})

	t.Run("expired price is excluded", func(t *testing.T) {
		basic := testPrice(1, "basic", "100")
		vip := testPrice(2, "vip", "80", validIn(date(2024, time.January, 1), date(2024, time.June, 30)))

		got, err := Resolve([]*Price{basic, vip}, InnerRecordNone, "USD", at(date(2024, time.July, 1)), vipFirst)
		require.NoError(t, err)
		assert.Same(t, basic, got)
	})

	t.Run("price valid on the last day is kept", func(t *testing.T) {
		vip := testPrice(2, "vip", "80", validIn(date(2024, time.January, 1), date(2024, time.June, 30)))

		got, err := Resolve([]*Price{vip}, InnerRecordNone, "USD", at(date(2024, time.June, 30)), vipFirst)
		require.NoError(t, err)
		assert.Same(t, vip, got)
	})

	t.Run("dropped price is excluded", func(t *testing.T) {
		basic := testPrice(1, "basic", "100")
		vip := testPrice(2, "vip", "80", dropped())

		got, err := Resolve([]*Price{basic, vip}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, basic, got)
	})

	t.Run("currency must match exactly", func(t *testing.T) {
		basic := testPrice(1, "basic", "100")
		vip := testPrice(2, "vip", "80", currency("EUR"))

		got, err := Resolve([]*Price{basic, vip}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, basic, got)
	})

	t.Run("non-indexed price is never sold", func(t *testing.T) {
		vip := testPrice(2, "vip", "80", notIndexed())

		got, err := Resolve([]*Price{vip}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("price list outside priority is ignored", func(t *testing.T) {
		promo := testPrice(3, "promo", "1")

		got, err := Resolve([]*Price{promo}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty priority resolves nothing", func(t *testing.T) {
		got, err := Resolve([]*Price{testPrice(1, "basic", "100")}, InnerRecordNone, "USD", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("equal rank falls back to key order", func(t *testing.T) {
		second := testPrice(9, "vip", "80")
		first := testPrice(4, "vip", "90")

		got, err := Resolve([]*Price{second, first}, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, first, got)
	})

	t.Run("input is not modified", func(t *testing.T) {
		prices := []*Price{testPrice(1, "basic", "100"), testPrice(2, "vip", "80", dropped())}
		snapshot := append([]*Price(nil), prices...)

		_, err := Resolve(prices, InnerRecordNone, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Equal(t, snapshot, prices)
	})
}

func TestResolve_LowestPrice(t *testing.T) {
	vipFirst := []string{"vip", "basic"}

	t.Run("lowest group representative wins", func(t *testing.T) {
		basic1 := testPrice(1, "basic", "50", inner(1))
		vip1 := testPrice(2, "vip", "40", inner(1))
		basic2 := testPrice(3, "basic", "70", inner(2))

		got, err := Resolve([]*Price{basic1, vip1, basic2}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, vip1, got)
	})

	t.Run("representative is chosen by rank, not amount", func(t *testing.T) {
		basic1 := testPrice(1, "basic", "10", inner(1))
		vip1 := testPrice(2, "vip", "60", inner(1))
		basic2 := testPrice(3, "basic", "50", inner(2))

		got, err := Resolve([]*Price{basic1, vip1, basic2}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, basic2, got)
	})

	t.Run("equal amounts go to the smallest inner record", func(t *testing.T) {
		third := testPrice(1, "basic", "40", inner(3))
		first := testPrice(2, "basic", "40", inner(1))

		got, err := Resolve([]*Price{third, first}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, first, got)
	})

	t.Run("no sellable representative", func(t *testing.T) {
		got, err := Resolve([]*Price{testPrice(1, "basic", "40", inner(1), notIndexed())}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("dropped price never represents its group", func(t *testing.T) {
		basic1 := testPrice(1, "basic", "50", inner(1))
		vip1 := testPrice(2, "vip", "40", inner(1), dropped())
		basic2 := testPrice(3, "basic", "45", inner(2))

		got, err := Resolve([]*Price{basic1, vip1, basic2}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Same(t, basic2, got)
	})

	t.Run("group of dropped prices yields nothing", func(t *testing.T) {
		got, err := Resolve([]*Price{testPrice(1, "basic", "40", inner(1), dropped())}, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestResolve_Sum(t *testing.T) {
	basicOnly := []string{"basic"}

	t.Run("representatives are summed", func(t *testing.T) {
		a := testPrice(1, "basic", "50", inner(1), tax("20"))
		b := testPrice(2, "basic", "30", inner(2), tax("20"))

		got, err := Resolve([]*Price{a, b}, InnerRecordSum, "USD", nil, basicOnly)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "80.00", got.PriceWithTax().String())
		assert.True(t, got.TaxRate().Equal(decimal.NewFromInt(20)))
		assert.True(t, got.IsCumulated())
		assert.Len(t, got.Components(), 2)
	})

	t.Run("tax rate mismatch fails", func(t *testing.T) {
		a := testPrice(1, "basic", "50", inner(1), tax("20"))
		b := testPrice(2, "basic", "30", inner(2), tax("10"))

		got, err := Resolve([]*Price{a, b}, InnerRecordSum, "USD", nil, basicOnly)
		assert.ErrorIs(t, err, ErrTaxRateMismatch)
		assert.Nil(t, got)
	})

	t.Run("inner record without a match is left out", func(t *testing.T) {
		a := testPrice(1, "basic", "50", inner(1))
		b := testPrice(2, "vip", "30", inner(2))

		got, err := Resolve([]*Price{a, b}, InnerRecordSum, "USD", nil, basicOnly)
		require.NoError(t, err)
		assert.Equal(t, "50.00", got.PriceWithTax().String())
		assert.Len(t, got.Components(), 1)
	})

	t.Run("dropped inner record is not summed", func(t *testing.T) {
		a := testPrice(1, "basic", "50", inner(1))
		b := testPrice(2, "basic", "30", inner(2), dropped())

		got, err := Resolve([]*Price{a, b}, InnerRecordSum, "USD", nil, basicOnly)
		require.NoError(t, err)
		assert.Equal(t, "50.00", got.PriceWithTax().String())
		assert.Len(t, got.Components(), 1)
	})

	t.Run("dropped price falls back to the next list", func(t *testing.T) {
		a := testPrice(1, "basic", "50", inner(1))
		aVip := testPrice(2, "vip", "10", inner(1), dropped())
		b := testPrice(3, "basic", "30", inner(2))

		got, err := Resolve([]*Price{a, aVip, b}, InnerRecordSum, "USD", nil, []string{"vip", "basic"})
		require.NoError(t, err)
		assert.Equal(t, "80.00", got.PriceWithTax().String())
		assert.Same(t, a, got.Components()[1])
	})

	t.Run("only dropped prices", func(t *testing.T) {
		got, err := Resolve([]*Price{testPrice(1, "basic", "50", inner(1), dropped())}, InnerRecordSum, "USD", nil, basicOnly)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("nothing to sum", func(t *testing.T) {
		got, err := Resolve(nil, InnerRecordSum, "USD", nil, basicOnly)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestResolve_UnknownHandling(t *testing.T) {
	_, err := Resolve([]*Price{testPrice(1, "basic", "10")}, InnerRecordUnknown, "USD", nil, []string{"basic"})
	assert.ErrorIs(t, err, ErrInnerRecordHandlingUnknown)

	_, err = Resolve(nil, InnerRecordHandling(42), "USD", nil, []string{"basic"})
	assert.ErrorIs(t, err, ErrInnerRecordHandlingUnknown)
}

func TestResolveAll(t *testing.T) {
	vipFirst := []string{"vip", "basic"}
	basic1 := testPrice(1, "basic", "50", inner(1))
	vip1 := testPrice(2, "vip", "40", inner(1))
	basic2 := testPrice(3, "basic", "70", inner(2))
	prices := []*Price{basic2, basic1, vip1}

	t.Run("lowest price returns every representative", func(t *testing.T) {
		got, err := ResolveAll(prices, InnerRecordLowestPrice, "USD", nil, vipFirst)
		require.NoError(t, err)
		assert.Equal(t, []*Price{vip1, basic2}, got)
	})

	t.Run("sum returns the single cumulated price", func(t *testing.T) {
		got, err := ResolveAll(prices, InnerRecordSum, "USD", nil, vipFirst)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "110.00", got[0].PriceWithTax().String())
	})

	t.Run("nothing for sale returns empty", func(t *testing.T) {
		got, err := ResolveAll(prices, InnerRecordNone, "EUR", nil, vipFirst)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestInInterval(t *testing.T) {
	p := testPrice(1, "basic", "120", net("100"))

	assert.True(t, InInterval([]*Price{p}, MustParseMoney("120"), MustParseMoney("150"), WithTax))
	assert.False(t, InInterval([]*Price{p}, MustParseMoney("121"), MustParseMoney("150"), WithTax))
	assert.True(t, InInterval([]*Price{p}, MustParseMoney("50"), MustParseMoney("100"), WithoutTax))
	assert.False(t, InInterval(nil, MustParseMoney("0"), MustParseMoney("1000"), WithTax))
}
