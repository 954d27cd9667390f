package pricing

import "haulquote/internal/tables"

// TierLookup resolves a billable weight to a price tier and rate-table row.
type TierLookup struct {
    t *tables.Tables
}

func NewTierLookup(t *tables.Tables) TierLookup { return TierLookup{t: t} }

// SelectTier picks the smallest weight tier >= weightKg, or the largest tier
// when the weight exceeds every bracket (over-tier shipments price at the top
// bracket, never error). ok is false only when the table has no tiers at all.
func (l TierLookup) SelectTier(weightKg float64) (float64, bool) {
    tiers := l.t.Tiers()
    if len(tiers) == 0 {
        return 0, false
    }
    for _, wt := range tiers {
        if wt >= weightKg {
            return wt, true
        }
    }
    return tiers[len(tiers)-1], true
}

// Price looks up the rate for (tier-of-weightKg, zone, service). A P.O.A cell
// propagates as Price.POA; a missing row resolves to amount 0 — a
// configuration gap the caller must treat as "no rate configured", not a
// valid free quote.
func (l TierLookup) Price(weightKg float64, zone, service string) tables.Price {
    tier, ok := l.SelectTier(weightKg)
    if !ok {
        return tables.Price{}
    }
    for _, row := range l.t.Pricing {
        if row.WeightKG == tier && row.Zone == zone && row.Service == service {
            return row.Price
        }
    }
    return tables.Price{}
}
