package pricing

import "strings"

// Service level codes.
const (
    ServiceNextDay = "ND"
    ServiceEconomy = "E"
)

// Options are the tunable pricing knobs, normally sourced from config.
type Options struct {
    FuelRate           float64  // fraction of the base price
    MetroZones         []string // zones carrying the metro surcharge
    MoffettMinQuantity int
    DefaultService     string // substituted when the requested level is unavailable
}

func (o Options) withDefaults() Options {
    if o.FuelRate == 0 { o.FuelRate = 0.08 }
    if o.MetroZones == nil { o.MetroZones = []string{"5", "6"} }
    if o.MoffettMinQuantity == 0 { o.MoffettMinQuantity = 8 }
    if o.DefaultService == "" { o.DefaultService = ServiceNextDay }
    return o
}

// NormalizeService maps a requested service level to its code. Long names are
// accepted; anything unrecognized falls back to Economy (availability against
// the zone is checked separately by the engine).
func NormalizeService(s string) string {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case "ND", "NEXT DAY", "NEXTDAY", "NEXT-DAY":
        return ServiceNextDay
    case "E", "ECONOMY":
        return ServiceEconomy
    default:
        return ServiceEconomy
    }
}
