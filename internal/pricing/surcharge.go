package pricing

import (
    "fmt"
    "math"
    "slices"

    "haulquote/internal/model"
    "haulquote/internal/tables"
)

// Surcharge dataset keys, matched by case-insensitive substring.
const (
    surchargeAWB      = "Airway Bill Printing"
    surchargeLabels   = "Cargo Identification Labels"
    surchargeTailLift = "Tail-lift"
    surchargeMoffett  = "Moffat"
    surchargeTimed    = "AM or PM"
    surchargeADR      = "ADR"
    surchargeMetro    = "London"
)

// SurchargeResult is an itemized surcharge breakdown. Every line amount is
// independently rounded to 2dp and Total is the sum of those rounded lines,
// so displayed items always reconcile exactly with the total.
type SurchargeResult struct {
    Lines []model.SurchargeLine
    Total float64
}

// SurchargeCalculator applies the fixed surcharge rule sequence.
type SurchargeCalculator struct {
    t    *tables.Tables
    opts Options
}

func NewSurchargeCalculator(t *tables.Tables, opts Options) SurchargeCalculator {
    return SurchargeCalculator{t: t, opts: opts.withDefaults()}
}

// Apply runs the surcharge rules in their fixed order: the two unconditional
// fees, the conditional fees, then the fuel percentage last.
func (c SurchargeCalculator) Apply(rec model.ShipmentRecord, basePrice float64, zone string, quantity int) SurchargeResult {
    var res SurchargeResult

    // Always applied: one AWB printing fee per order, one label per item.
    res.add(surchargeAWB, c.t.SurchargeAmount(surchargeAWB))
    res.add(fmt.Sprintf("%s (%d items)", surchargeLabels, quantity),
        c.t.SurchargeAmount(surchargeLabels)*float64(quantity))

    if rec.TailLiftNeeded {
        res.add("Tail Lift", c.t.SurchargeAmount(surchargeTailLift))
    }
    // Moffett offload only pays for itself on larger consignments; below the
    // threshold the fee is silently omitted, not rejected.
    if rec.MoffettDelivery && quantity >= c.opts.MoffettMinQuantity {
        res.add("Moffett Delivery", c.t.SurchargeAmount(surchargeMoffett))
    }
    if rec.DeliveryTime == "AM" || rec.DeliveryTime == "PM" {
        res.add(rec.DeliveryTime+" Delivery", c.t.SurchargeAmount(surchargeTimed))
    }
    if rec.ADRSurcharge {
        res.add("ADR Surcharge", c.t.SurchargeAmount(surchargeADR))
    }
    if slices.Contains(c.opts.MetroZones, zone) {
        res.add("London Surcharge", c.t.SurchargeAmount(surchargeMetro))
    }

    // Fuel is a percentage of the freight price, computed last.
    res.add("Fuel Surcharge", basePrice*c.opts.FuelRate)
    return res
}

func (r *SurchargeResult) add(name string, amount float64) {
    amount = Round2(amount)
    r.Lines = append(r.Lines, model.SurchargeLine{Name: name, Amount: amount})
    r.Total += amount
}

// Round2 rounds to two decimal places, the rounding every displayed amount
// goes through before summing.
func Round2(v float64) float64 {
    return math.Round(v*100) / 100
}
