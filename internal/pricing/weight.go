package pricing

import (
    "regexp"
    "strconv"
    "strings"
)

// Fixed billing constants. These are tariff law, not deployment knobs.
const (
    // DensityKgPerM3 converts shipment volume to a weight equivalent.
    DensityKgPerM3 = 333.0
    // Standard UK pallet footprint 1.2m x 0.8m, stacked to 1.2m.
    palletVolumeM3 = 1.2 * 0.8 * 1.2 // 1.152
)

var (
    totalWeightRe = regexp.MustCompile(`total.*?weight.*?(\d+\.?\d*)\s*(?:kg|kgs|kilogram)`)
    numberRe      = regexp.MustCompile(`\d+\.?\d*`)
    dimNumberRe   = regexp.MustCompile(`\d+`)
)

// ParseWeight extracts kilograms from a weight string such as "76.73 kgs" or
// "total gross weight 500 kg". Unparseable input yields 0.
func ParseWeight(s string) float64 {
    if s == "" {
        return 0
    }
    lower := strings.ToLower(s)
    if m := totalWeightRe.FindStringSubmatch(lower); m != nil {
        v, _ := strconv.ParseFloat(m[1], 64)
        return v
    }
    if m := numberRe.FindString(lower); m != "" {
        v, _ := strconv.ParseFloat(m, 64)
        return v
    }
    return 0
}

// BillableWeight returns the weight the shipment is priced at: the greater of
// the actual weight and the volumetric weight. The result is never below
// actualKg — that is the core billing invariant.
func BillableWeight(actualKg float64, quantity int, dims []string, volumeM3 *float64) float64 {
    vw := volumetricWeight(quantity, dims, volumeM3)
    if vw > actualKg {
        return vw
    }
    return actualKg
}

// volumetricWeight derives a weight equivalent from shipment volume.
// First applicable source wins:
//  a. an explicit positive volume figure
//  b. itemized dimension strings (three embedded integers, centimeters);
//     a single dimension line with quantity > 1 is treated as representative
//     and multiplied out
//  c. quantity standard pallets
func volumetricWeight(quantity int, dims []string, volumeM3 *float64) float64 {
    var total float64
    switch {
    case volumeM3 != nil && *volumeM3 > 0:
        total = *volumeM3
    case len(dims) > 0:
        for _, d := range dims {
            nums := dimNumberRe.FindAllString(d, 3)
            if len(nums) < 3 { continue }
            l, _ := strconv.Atoi(nums[0])
            w, _ := strconv.Atoi(nums[1])
            h, _ := strconv.Atoi(nums[2])
            total += float64(l) / 100 * float64(w) / 100 * float64(h) / 100
        }
        if len(dims) == 1 && quantity > 1 {
            total *= float64(quantity)
        }
    default:
        total = palletVolumeM3 * float64(quantity)
    }
    return total * DensityKgPerM3
}
