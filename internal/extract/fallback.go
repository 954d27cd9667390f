package extract

import (
    "regexp"
    "strconv"
    "strings"

    "haulquote/internal/model"
)

// airportAddresses expands an IATA code found in an enquiry into a deliverable
// address with its postcode. Slice keeps the scan order deterministic.
var airportAddresses = []struct{ code, address string }{
    {"BHX", "Birmingham Airport (BHX), B26 3QJ"},
    {"LHR", "Heathrow Airport (LHR), TW6 1EW"},
    {"LGW", "Gatwick Airport (LGW), RH6 0NP"},
    {"MAN", "Manchester Airport (MAN), M90 1QX"},
    {"STN", "Stansted Airport (STN), CM24 1RW"},
    {"EDI", "Edinburgh Airport (EDI), EH12 9DN"},
    {"GLA", "Glasgow Airport (GLA), PA3 2SW"},
}

var (
    fallbackQtyRe      = regexp.MustCompile(`(\d+)\s*pallet`)
    fallbackWeightRe   = regexp.MustCompile(`(\d+)\s*kg`)
    fallbackPostcodeRe = regexp.MustCompile(`(?i)[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}`)
    adrRe              = regexp.MustCompile(`\badr\b`)
    fallbackVolumeRes  = []*regexp.Regexp{
        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*m³`),
        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*m3`),
        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*m\^3`),
        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*cubic\s*met`),
        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*cbm`),
    }
)

// Fallback extracts a shipment record with plain regex heuristics. It always
// returns a record; sparse fields are left empty and rejected downstream by
// the pricing engine's own validation.
func Fallback(subject, body string) model.ShipmentRecord {
    text := subject + "\n" + body
    lower := strings.ToLower(text)

    rec := model.ShipmentRecord{
        FreightType: "pallets",
        ServiceType: "ND",
    }

    if m := fallbackQtyRe.FindStringSubmatch(lower); m != nil {
        rec.Quantity, _ = strconv.Atoi(m[1])
    }
    if m := fallbackWeightRe.FindStringSubmatch(lower); m != nil {
        rec.TotalWeight = m[1] + " kg"
    } else {
        rec.TotalWeight = "0 kg"
    }
    for _, re := range fallbackVolumeRes {
        if m := re.FindStringSubmatch(text); m != nil {
            if v, err := strconv.ParseFloat(m[1], 64); err == nil {
                rec.VolumeM3 = &v
                break
            }
        }
    }

    // Destination: an airport code anywhere in the enquiry.
    for _, a := range airportAddresses {
        if strings.Contains(text, a.code) {
            rec.ToAddress = a.address
            break
        }
    }
    // Pickup: the first postcode in the text that isn't the destination's.
    for _, pc := range fallbackPostcodeRe.FindAllString(text, -1) {
        if rec.ToAddress != "" && strings.Contains(rec.ToAddress, strings.ToUpper(pc)) {
            continue
        }
        rec.FromAddress = strings.ToUpper(pc)
        break
    }

    if strings.Contains(lower, "tail lift") || strings.Contains(lower, "tail-lift") {
        rec.TailLiftNeeded = true
    }
    if strings.Contains(lower, "moffett") || strings.Contains(lower, "moffat") {
        rec.MoffettDelivery = true
    }
    if adrRe.MatchString(lower) || strings.Contains(lower, "hazardous") {
        rec.ADRSurcharge = true
    }
    switch {
    case strings.Contains(lower, "am delivery") || strings.Contains(lower, "morning delivery"):
        rec.DeliveryTime = "AM"
    case strings.Contains(lower, "pm delivery") || strings.Contains(lower, "afternoon delivery"):
        rec.DeliveryTime = "PM"
    }
    if strings.Contains(lower, "economy") {
        rec.ServiceType = "E"
    }
    return rec
}
