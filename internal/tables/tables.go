// Package tables loads the flat-file rate, zone and surcharge datasets into an
// immutable in-memory lookup structure. Tables are built once at startup and
// never mutated afterwards, so they are safe to share across request
// goroutines without locking.
package tables

import (
    "encoding/csv"
    "io"
    "os"
    "sort"
    "strconv"
    "strings"

    "go.uber.org/zap"
)

// POAMarker is the literal the pricing dataset uses for "price on application".
const POAMarker = "P.O.A"

// Price is a rate-table price cell: either a fixed amount or the P.O.A marker.
type Price struct {
    Amount float64
    POA    bool
}

// RateRow is one pricing row: (weight tier, zone, service) -> price.
type RateRow struct {
    WeightKG float64
    Zone     string
    Service  string
    Price    Price
}

// ZoneRow is one raw zone-map row. Prefix patterns are interpreted by the
// zone resolver: exact ("CO"), ranged ("GU26-35"), open-ended ("PA20+") or
// catch-all ("GU (REST)").
type ZoneRow struct {
    Prefix   string
    Zone     string
    Services []string
}

// SurchargeRow is one surcharge dataset row.
type SurchargeRow struct {
    Type   string
    Amount float64
}

// Tables is the loaded dataset. Zero value behaves as an empty dataset:
// lookups return "not found"/0, never panic.
type Tables struct {
    Pricing    []RateRow
    Zones      []ZoneRow
    Surcharges []SurchargeRow

    tiers []float64 // distinct weight tiers, ascending
}

// New builds Tables from in-memory rows, deriving the tier index. Used by
// tests and anywhere data doesn't come from the CSV files.
func New(pricing []RateRow, zones []ZoneRow, surcharges []SurchargeRow) *Tables {
    t := &Tables{Pricing: pricing, Zones: zones, Surcharges: surcharges}
    t.buildTiers()
    return t
}

// Load reads the three CSV datasets. A missing file yields an empty table and
// a warning, not an error; malformed rows are skipped.
func Load(pricingPath, zonesPath, surchargesPath string, log *zap.Logger) (*Tables, error) {
    if log == nil { log = zap.NewNop() }
    t := &Tables{}

    for _, row := range readCSV(pricingPath, log) {
        weight, err := strconv.ParseFloat(strings.TrimSpace(row["Weight_KG"]), 64)
        if err != nil { continue }
        raw := strings.TrimSpace(row["Price_GBP"])
        var price Price
        if strings.EqualFold(raw, POAMarker) {
            price.POA = true
        } else {
            amt, err := strconv.ParseFloat(raw, 64)
            if err != nil { continue }
            price.Amount = amt
        }
        t.Pricing = append(t.Pricing, RateRow{
            WeightKG: weight,
            Zone:     strings.TrimSpace(row["Zone"]),
            Service:  strings.TrimSpace(row["Service"]),
            Price:    price,
        })
    }

    for _, row := range readCSV(zonesPath, log) {
        prefix := strings.TrimSpace(row["Postcode_Prefix"])
        zone := strings.TrimSpace(row["Zone"])
        if prefix == "" || zone == "" { continue }
        t.Zones = append(t.Zones, ZoneRow{
            Prefix:   prefix,
            Zone:     zone,
            Services: splitServices(row["Service_Level"]),
        })
    }

    for _, row := range readCSV(surchargesPath, log) {
        name := strings.TrimSpace(row["Surcharge_Type"])
        if name == "" { continue }
        amt, err := strconv.ParseFloat(strings.TrimSpace(row["Amount_GBP"]), 64)
        if err != nil { continue }
        t.Surcharges = append(t.Surcharges, SurchargeRow{Type: name, Amount: amt})
    }

    t.buildTiers()
    log.Info("datasets loaded",
        zap.Int("pricingRows", len(t.Pricing)),
        zap.Int("zoneRows", len(t.Zones)),
        zap.Int("surchargeRows", len(t.Surcharges)))
    return t, nil
}

func (t *Tables) buildTiers() {
    seen := map[float64]struct{}{}
    for _, r := range t.Pricing {
        if _, ok := seen[r.WeightKG]; ok { continue }
        seen[r.WeightKG] = struct{}{}
        t.tiers = append(t.tiers, r.WeightKG)
    }
    sort.Float64s(t.tiers)
}

// Tiers returns the distinct weight tiers present in the pricing table,
// ascending. The returned slice must not be modified.
func (t *Tables) Tiers() []float64 { return t.tiers }

// SurchargeAmount resolves a surcharge by case-insensitive substring match
// against the dataset, mirroring how the tariff sheet is keyed. Unknown names
// resolve to 0, never an error.
func (t *Tables) SurchargeAmount(name string) float64 {
    needle := strings.ToLower(name)
    for _, row := range t.Surcharges {
        if strings.Contains(strings.ToLower(row.Type), needle) {
            return row.Amount
        }
    }
    return 0
}

// splitServices parses a Service_Level cell like "ND,E" or "ND/E".
func splitServices(s string) []string {
    fields := strings.FieldsFunc(s, func(r rune) bool {
        return r == ',' || r == '/' || r == ' ' || r == ';'
    })
    out := make([]string, 0, len(fields))
    for _, f := range fields {
        f = strings.ToUpper(strings.TrimSpace(f))
        if f != "" { out = append(out, f) }
    }
    return out
}

// readCSV loads a header-keyed CSV file. Missing file -> nil rows plus a
// warning; the service runs in a degraded soft mode with empty tables.
func readCSV(path string, log *zap.Logger) []map[string]string {
    f, err := os.Open(path)
    if err != nil {
        log.Warn("dataset file missing", zap.String("path", path), zap.Error(err))
        return nil
    }
    defer f.Close()

    r := csv.NewReader(f)
    r.FieldsPerRecord = -1
    r.TrimLeadingSpace = true
    header, err := r.Read()
    if err != nil {
        log.Warn("dataset header unreadable", zap.String("path", path), zap.Error(err))
        return nil
    }
    for i := range header { header[i] = strings.TrimSpace(header[i]) }

    var rows []map[string]string
    for {
        rec, err := r.Read()
        if err == io.EOF { break }
        if err != nil {
            log.Warn("dataset row skipped", zap.String("path", path), zap.Error(err))
            continue
        }
        row := make(map[string]string, len(header))
        for i, h := range header {
            if i < len(rec) { row[h] = rec[i] }
        }
        rows = append(rows, row)
    }
    return rows
}
