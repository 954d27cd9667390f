package pricing

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "haulquote/internal/model"
    "haulquote/internal/tables"
)

func ratesFixture() *tables.Tables {
    return tables.New(
        []tables.RateRow{
            {WeightKG: 500, Zone: "1", Service: "ND", Price: tables.Price{Amount: 100}},
            {WeightKG: 1000, Zone: "1", Service: "ND", Price: tables.Price{Amount: 150}},
            {WeightKG: 2000, Zone: "1", Service: "ND", Price: tables.Price{Amount: 250}},
            {WeightKG: 500, Zone: "1", Service: "E", Price: tables.Price{Amount: 80}},
            {WeightKG: 1000, Zone: "1", Service: "E", Price: tables.Price{Amount: 120}},
            {WeightKG: 500, Zone: "5", Service: "ND", Price: tables.Price{Amount: 120}},
            {WeightKG: 1000, Zone: "5", Service: "ND", Price: tables.Price{Amount: 180}},
            {WeightKG: 2000, Zone: "5", Service: "ND", Price: tables.Price{Amount: 280}},
            {WeightKG: 500, Zone: "3", Service: "ND", Price: tables.Price{POA: true}},
        },
        []tables.ZoneRow{
            {Prefix: "CO", Zone: "1", Services: []string{"ND", "E"}},
            {Prefix: "B", Zone: "5", Services: []string{"ND"}},
            {Prefix: "GU26-35", Zone: "3", Services: []string{"ND"}},
        },
        []tables.SurchargeRow{
            {Type: "Airway Bill Printing", Amount: 5.00},
            {Type: "Cargo Identification Labels", Amount: 0.30},
            {Type: "Tail-lift Delivery", Amount: 15.00},
            {Type: "Moffat Offload", Amount: 90.00},
            {Type: "AM or PM Timed Delivery", Amount: 25.00},
            {Type: "ADR (Hazardous)", Amount: 50.00},
            {Type: "London Congestion", Amount: 30.00},
        },
    )
}

func newEngine() *Engine {
    return NewEngine(ratesFixture(), Options{})
}

func quoteLine(q *model.Quote, label string) (model.QuoteLine, bool) {
    for _, l := range q.Lines {
        if l.Label == label {
            return l, true
        }
    }
    return model.QuoteLine{}, false
}

func TestQuoteHappyPath(t *testing.T) {
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "Unit 3, CO4 9TD, Colchester",
        ToAddress:   "Birmingham",
        Quantity:    2,
        TotalWeight: "760 kgs",
        ServiceType: "ND",
    })
    require.Nil(t, qe)
    require.NotNil(t, q)

    // 2 pallets volumetric: 2 * 1.152 * 333 = 767.232 kg > 760 actual.
    bill, ok := quoteLine(q, "Billed for")
    require.True(t, ok)
    assert.Equal(t, "767.23 kg / Zone 1 / ND", bill.Text)

    actual, ok := quoteLine(q, "Actual weight")
    require.True(t, ok)
    assert.Equal(t, "760 kg", actual.Text)

    base, ok := quoteLine(q, "Collection & Delivery")
    require.True(t, ok)
    assert.Equal(t, 150.0, base.Amount)

    fuel, ok := quoteLine(q, "Fuel Surcharge (8% of freight)")
    require.True(t, ok)
    assert.InDelta(t, 12.0, fuel.Amount, 1e-9)

    awb, ok := quoteLine(q, "Airway bill printing")
    require.True(t, ok)
    assert.Equal(t, 5.0, awb.Amount)

    labels, ok := quoteLine(q, "Cargo identification labels (2 @ £0.30)")
    require.True(t, ok)
    assert.InDelta(t, 0.60, labels.Amount, 1e-9)

    other, ok := quoteLine(q, "Other surcharges")
    require.True(t, ok)
    assert.Zero(t, other.Amount)

    assert.InDelta(t, 167.60, q.Total, 1e-9)
    assert.Equal(t, "Total", q.Lines[len(q.Lines)-1].Label)

    assert.Equal(t, "CO4 9TD", q.Details.Postcode)
    assert.False(t, q.Details.PostcodeApprox)
    assert.Equal(t, "1", q.Details.Zone)
    assert.Equal(t, "ND", q.Details.ServiceType)
    assert.InDelta(t, 767.23, q.Details.BilledWeightKg, 1e-9)
}

func TestQuoteLinesReconcileWithTotal(t *testing.T) {
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress:     "B26 3QJ",
        Quantity:        9,
        TotalWeight:     "total weight 1850 kg",
        TailLiftNeeded:  true,
        MoffettDelivery: true,
        DeliveryTime:    "AM",
        ADRSurcharge:    true,
        ServiceType:     "ND",
    })
    require.Nil(t, qe)

    var sum float64
    for _, l := range q.Lines {
        if l.IsText() || l.Label == "Total" { continue }
        sum += l.Amount
    }
    assert.InDelta(t, q.Total, sum, 1e-9, "amount lines sum to the total")
}

func TestQuoteOtherSurchargesBySubtraction(t *testing.T) {
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress:    "B26 3QJ",
        Quantity:       1,
        TotalWeight:    "400 kg",
        TailLiftNeeded: true,
        ServiceType:    "ND",
    })
    require.Nil(t, qe)

    // Zone 5 carries the metro fee: tail lift 15 + London 30 = 45.
    other, ok := quoteLine(q, "Other surcharges")
    require.True(t, ok)
    assert.InDelta(t, 45.0, other.Amount, 1e-9)
}

func TestQuoteServiceFallback(t *testing.T) {
    // Zone 5 only offers ND; an Economy request quotes at the default level.
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "B26 3QJ",
        Quantity:    1,
        TotalWeight: "400 kg",
        ServiceType: "Economy",
    })
    require.Nil(t, qe)
    assert.Equal(t, "ND", q.Details.ServiceType)
}

func TestQuoteEconomyService(t *testing.T) {
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "CO1 1AB",
        Quantity:    1,
        TotalWeight: "450 kg",
        ServiceType: "economy",
    })
    require.Nil(t, qe)
    assert.Equal(t, "E", q.Details.ServiceType)

    base, _ := quoteLine(q, "Collection & Delivery")
    assert.Equal(t, 80.0, base.Amount)
}

func TestQuoteMissingPickup(t *testing.T) {
    _, qe := newEngine().Quote(model.ShipmentRecord{Quantity: 1})
    require.NotNil(t, qe)
    assert.Equal(t, model.ErrInvalidInput, qe.Kind)
}

func TestQuoteInvalidQuantity(t *testing.T) {
    _, qe := newEngine().Quote(model.ShipmentRecord{FromAddress: "CO1 1AB"})
    require.NotNil(t, qe)
    assert.Equal(t, model.ErrInvalidInput, qe.Kind)
}

func TestQuoteUnresolvablePostcode(t *testing.T) {
    _, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "somewhere up north",
        Quantity:    1,
    })
    require.NotNil(t, qe)
    assert.Equal(t, model.ErrUnresolvable, qe.Kind)
    assert.Contains(t, qe.Reason, "could not extract postcode")
}

func TestQuoteUnservedZone(t *testing.T) {
    _, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "ZE1 1AB",
        Quantity:    1,
    })
    require.NotNil(t, qe)
    assert.Equal(t, model.ErrUnresolvable, qe.Kind)
    assert.Contains(t, qe.Reason, "service not available")
}

func TestQuotePriceOnApplication(t *testing.T) {
    _, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "GU30 1AA",
        Quantity:    1,
        TotalWeight: "300 kg",
    })
    require.NotNil(t, qe)
    assert.Equal(t, model.ErrPriceOnApplication, qe.Kind)
}

func TestQuoteApproximatePostcodeFlagged(t *testing.T) {
    q, qe := newEngine().Quote(model.ShipmentRecord{
        FromAddress: "CO7",
        Quantity:    1,
        TotalWeight: "400 kg",
    })
    require.Nil(t, qe)
    assert.True(t, q.Details.PostcodeApprox)
    assert.Equal(t, "CO7 7AB", q.Details.Postcode)
}
