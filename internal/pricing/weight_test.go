package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestParseWeight(t *testing.T) {
    cases := []struct {
        in   string
        want float64
    }{
        {"76.73 kgs", 76.73},
        {"500kg", 500},
        {"Total gross weight 1250 kg", 1250},
        {"approx. 2 pallets, total weight 950 kgs", 950},
        {"", 0},
        {"heavy", 0},
    }
    for _, c := range cases {
        assert.Equal(t, c.want, ParseWeight(c.in), "%q", c.in)
    }
}

func TestBillableWeightActualDominates(t *testing.T) {
    vol := 0.5 // 166.5 kg volumetric
    got := BillableWeight(800, 1, nil, &vol)
    assert.Equal(t, 800.0, got)
}

func TestBillableWeightExplicitVolume(t *testing.T) {
    vol := 3.0
    got := BillableWeight(100, 2, []string{"120x80x100"}, &vol)
    assert.InDelta(t, 3.0*DensityKgPerM3, got, 1e-9, "explicit volume wins over dimensions")
}

func TestBillableWeightFromDimensions(t *testing.T) {
    got := BillableWeight(10, 1, []string{"120 x 80 x 100 cm"}, nil)
    assert.InDelta(t, 0.96*DensityKgPerM3, got, 1e-9)
}

func TestBillableWeightSingleDimensionMultiplied(t *testing.T) {
    one := BillableWeight(0, 1, []string{"100x100x100"}, nil)
    four := BillableWeight(0, 4, []string{"100x100x100"}, nil)
    assert.InDelta(t, one*4, four, 1e-9)
}

func TestBillableWeightItemizedDimensionsNotMultiplied(t *testing.T) {
    dims := []string{"100x100x100", "50x50x50"}
    got := BillableWeight(0, 2, dims, nil)
    assert.InDelta(t, (1.0+0.125)*DensityKgPerM3, got, 1e-9)
}

func TestBillableWeightPalletDefault(t *testing.T) {
    got := BillableWeight(100, 2, nil, nil)
    assert.InDelta(t, 2*1.152*DensityKgPerM3, got, 1e-9)

    // 5 pallets at 500 kg actual: volumetric 1918.08 kg wins.
    got = BillableWeight(500, 5, nil, nil)
    assert.InDelta(t, 1918.08, got, 1e-6)
}

func TestBillableWeightNeverBelowActual(t *testing.T) {
    for _, qty := range []int{1, 2, 5, 10} {
        got := BillableWeight(5000, qty, nil, nil)
        assert.GreaterOrEqual(t, got, 5000.0)
    }
}

func TestBillableWeightSkipsMalformedDimension(t *testing.T) {
    got := BillableWeight(0, 1, []string{"oversize", "100x100x100"}, nil)
    assert.InDelta(t, 1.0*DensityKgPerM3, got, 1e-9)
}
