package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "haulquote/internal/tables"
)

func TestSelectTierSmallestAtOrAbove(t *testing.T) {
    l := NewTierLookup(ratesFixture())

    tier, ok := l.SelectTier(499)
    require.True(t, ok)
    assert.Equal(t, 500.0, tier)

    tier, ok = l.SelectTier(500)
    require.True(t, ok)
    assert.Equal(t, 500.0, tier, "boundary weight lands in its own tier")

    tier, ok = l.SelectTier(500.01)
    require.True(t, ok)
    assert.Equal(t, 1000.0, tier)
}

func TestSelectTierOverMaxUsesTop(t *testing.T) {
    l := NewTierLookup(ratesFixture())
    tier, ok := l.SelectTier(99999)
    require.True(t, ok)
    assert.Equal(t, 2000.0, tier)
}

func TestSelectTierMonotonic(t *testing.T) {
    l := NewTierLookup(ratesFixture())
    prev := 0.0
    for w := 0.0; w <= 3000; w += 50 {
        tier, ok := l.SelectTier(w)
        require.True(t, ok)
        assert.GreaterOrEqual(t, tier, prev)
        prev = tier
    }
}

func TestSelectTierEmptyTable(t *testing.T) {
    l := NewTierLookup(tables.New(nil, nil, nil))
    _, ok := l.SelectTier(100)
    assert.False(t, ok)
}

func TestPriceLookup(t *testing.T) {
    l := NewTierLookup(ratesFixture())

    p := l.Price(480, "1", "ND")
    assert.Equal(t, 100.0, p.Amount)
    assert.False(t, p.POA)

    p = l.Price(480, "1", "E")
    assert.Equal(t, 80.0, p.Amount)
}

func TestPricePOA(t *testing.T) {
    l := NewTierLookup(ratesFixture())
    p := l.Price(480, "3", "ND")
    assert.True(t, p.POA)
}

func TestPriceMissingRowIsZero(t *testing.T) {
    l := NewTierLookup(ratesFixture())
    p := l.Price(480, "9", "ND")
    assert.Zero(t, p.Amount)
    assert.False(t, p.POA)
}
