// Package pricing implements the quote derivation core: postcode and zone
// resolution, billable-weight computation, tier lookup, surcharge
// accumulation and breakdown assembly. Everything here is pure computation
// over immutable tables; Engine values are safe for concurrent use.
package pricing

import (
    "fmt"
    "slices"
    "strconv"
    "strings"

    "haulquote/internal/model"
    "haulquote/internal/tables"
)

const quoteNotes = "This is an automated quote. Final price subject to confirmation."

// Engine orchestrates one shipment record into a priced quote.
type Engine struct {
    tables *tables.Tables
    zones  *ZoneResolver
    tiers  TierLookup
    sur    SurchargeCalculator
    opts   Options
}

// NewEngine builds an Engine over the loaded datasets. The tables are shared,
// never copied, and must not be mutated after this call.
func NewEngine(t *tables.Tables, opts Options) *Engine {
    opts = opts.withDefaults()
    return &Engine{
        tables: t,
        zones:  NewZoneResolver(t),
        tiers:  NewTierLookup(t),
        sur:    NewSurchargeCalculator(t, opts),
        opts:   opts,
    }
}

// Zones exposes the compiled zone rules for diagnostics.
func (e *Engine) Zones() *ZoneResolver { return e.zones }

// Quote prices a shipment record. Failures come back as *model.QuoteError
// (invalid_input, unresolvable, price_on_application); the engine never
// panics past this boundary. A missing rate row is not a failure: it prices
// at 0, a configuration gap the operator must notice.
func (e *Engine) Quote(rec model.ShipmentRecord) (*model.Quote, *model.QuoteError) {
    if strings.TrimSpace(rec.FromAddress) == "" {
        return nil, model.InvalidInput("missing pickup address")
    }
    if rec.Quantity <= 0 {
        return nil, model.InvalidInput("missing or invalid quantity")
    }

    pc, ok := ResolvePostcode(rec.FromAddress)
    if !ok {
        return nil, model.Unresolvable("could not extract postcode from pickup address: %s", rec.FromAddress)
    }
    zone, ok := e.zones.Resolve(pc.Postcode)
    if !ok {
        return nil, model.Unresolvable("service not available for postcode: %s", pc.Postcode)
    }

    service := NormalizeService(rec.ServiceType)
    if !slices.Contains(zone.Services, service) {
        // Documented fallback, not an error: zones that don't offer the
        // requested level quote at the default service instead.
        service = e.opts.DefaultService
    }

    actualKg := ParseWeight(rec.TotalWeight)
    billableKg := BillableWeight(actualKg, rec.Quantity, rec.Dimensions, rec.VolumeM3)

    price := e.tiers.Price(billableKg, zone.Zone, service)
    if price.POA {
        return nil, model.PriceOnApplication("price on application - please contact us")
    }
    base := Round2(price.Amount)

    sur := e.sur.Apply(rec, price.Amount, zone.Zone, rec.Quantity)
    fuel := surchargeLine(sur, "Fuel Surcharge")
    awb := surchargeLine(sur, surchargeAWB)
    labelRate := e.tables.SurchargeAmount(surchargeLabels)
    labels := surchargeLine(sur, surchargeLabels)

    lines := []model.QuoteLine{
        {Label: "Actual weight", Text: formatKg(actualKg)},
        {Label: "Billed for", Text: fmt.Sprintf("%.2f kg / Zone %s / %s", billableKg, zone.Zone, service)},
        {Label: "Collection & Delivery", Amount: base},
        {Label: fmt.Sprintf("Fuel Surcharge (%g%% of freight)", e.opts.FuelRate*100), Amount: fuel},
        {Label: "Airway bill printing", Amount: awb},
        {Label: fmt.Sprintf("Cargo identification labels (%d @ £%.2f)", rec.Quantity, labelRate), Amount: labels},
    }
    // Everything the three named surcharge lines don't cover, by subtraction:
    // total = sum of all rounded surcharge lines is the invariant that keeps
    // this reconciled with the itemization.
    other := Round2(sur.Total - fuel - awb - labels)
    lines = append(lines, model.QuoteLine{Label: "Other surcharges", Amount: other})

    total := Round2(base + sur.Total)
    lines = append(lines, model.QuoteLine{Label: "Total", Amount: total})

    return &model.Quote{
        Lines: lines,
        Total: total,
        Details: model.QuoteDetails{
            Quantity:       rec.Quantity,
            ActualWeightKg: actualKg,
            BilledWeightKg: Round2(billableKg),
            ServiceType:    service,
            Zone:           zone.Zone,
            Postcode:       pc.Postcode,
            PostcodeApprox: pc.Approximate,
            FromAddress:    rec.FromAddress,
            ToAddress:      rec.ToAddress,
            DeliveryDate:   rec.DeliveryDate,
            VolumeM3:       rec.VolumeM3,
            Surcharges:     sur.Lines,
            Notes:          quoteNotes,
        },
    }, nil
}

func surchargeLine(res SurchargeResult, name string) float64 {
    for _, l := range res.Lines {
        if strings.HasPrefix(l.Name, name) {
            return l.Amount
        }
    }
    return 0
}

func formatKg(v float64) string {
    return strconv.FormatFloat(v, 'f', -1, 64) + " kg"
}
