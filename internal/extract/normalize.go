package extract

import (
    "encoding/json"
    "fmt"
    "regexp"
    "strconv"
    "strings"

    "haulquote/internal/model"
)

// rawRecord tolerates the loose typing models produce: quantity as a string,
// weight as a bare number, volume as "13.550 M3" and so on.
type rawRecord struct {
    FreightType  json.RawMessage `json:"freight_type"`
    Quantity     json.RawMessage `json:"quantity"`
    TotalWeight  json.RawMessage `json:"total_weight"`
    Dimensions   []string        `json:"dimensions"`
    VolumeM3     json.RawMessage `json:"volume_m3"`
    FromAddress  string          `json:"from_address"`
    ToAddress    string          `json:"to_address"`
    DeliveryDate string          `json:"delivery_date"`
    ServiceType  string          `json:"service_type"`

    TailLiftNeeded   bool            `json:"tail_lift_needed"`
    MoffettDelivery  bool            `json:"moffett_delivery"`
    DeliveryTime     json.RawMessage `json:"delivery_time"`
    LabelingRequired bool            `json:"labeling_required"`
    AWBPrinting      bool            `json:"awb_printing"`
    ADRSurcharge     bool            `json:"adr_surcharge"`
    SpecialReqs      string          `json:"special_requirements"`
}

var (
    firstIntRe = regexp.MustCompile(`\d+`)
    numericRe  = regexp.MustCompile(`\d+\.?\d*`)
)

// normalizeRaw decodes a model reply into a clean ShipmentRecord: first
// integer wins for quantity, weights are converted to "X kg", volume becomes
// a numeric m³ value or nil.
func normalizeRaw(data []byte) (model.ShipmentRecord, error) {
    var raw rawRecord
    if err := json.Unmarshal(data, &raw); err != nil {
        return model.ShipmentRecord{}, err
    }

    rec := model.ShipmentRecord{
        FreightType:      rawString(raw.FreightType),
        Quantity:         firstInt(rawString(raw.Quantity)),
        TotalWeight:      standardizeWeight(rawString(raw.TotalWeight)),
        Dimensions:       raw.Dimensions,
        FromAddress:      strings.TrimSpace(raw.FromAddress),
        ToAddress:        strings.TrimSpace(raw.ToAddress),
        DeliveryDate:     strings.TrimSpace(raw.DeliveryDate),
        ServiceType:      strings.TrimSpace(raw.ServiceType),
        TailLiftNeeded:   raw.TailLiftNeeded,
        MoffettDelivery:  raw.MoffettDelivery,
        LabelingRequired: raw.LabelingRequired,
        AWBPrinting:      raw.AWBPrinting,
        ADRSurcharge:     raw.ADRSurcharge,
        SpecialReqs:      strings.TrimSpace(raw.SpecialReqs),
    }

    if v, ok := numericValue(rawString(raw.VolumeM3)); ok {
        rec.VolumeM3 = &v
    }
    switch dt := strings.ToUpper(rawString(raw.DeliveryTime)); dt {
    case "AM", "PM":
        rec.DeliveryTime = dt
    }
    return rec, nil
}

// rawString renders a JSON scalar as its text: strings unquoted, numbers as
// written, null/absent as "".
func rawString(m json.RawMessage) string {
    if len(m) == 0 || string(m) == "null" {
        return ""
    }
    var s string
    if err := json.Unmarshal(m, &s); err == nil {
        return s
    }
    var n float64
    if err := json.Unmarshal(m, &n); err == nil {
        return strconv.FormatFloat(n, 'f', -1, 64)
    }
    return string(m)
}

func firstInt(s string) int {
    m := firstIntRe.FindString(s)
    if m == "" {
        return 0
    }
    n, _ := strconv.Atoi(m)
    return n
}

// standardizeWeight converts to "X kg": tonnes x1000, pounds x0.453592.
func standardizeWeight(s string) string {
    lower := strings.ToLower(s)
    m := numericRe.FindString(lower)
    if m == "" {
        return "0 kg"
    }
    w, _ := strconv.ParseFloat(m, 64)
    switch {
    case strings.Contains(lower, "ton"):
        w *= 1000
    case strings.Contains(lower, "lb") || strings.Contains(lower, "pound"):
        w *= 0.453592
    }
    return fmt.Sprintf("%g kg", w)
}

func numericValue(s string) (float64, bool) {
    m := numericRe.FindString(s)
    if m == "" {
        return 0, false
    }
    v, err := strconv.ParseFloat(m, 64)
    if err != nil || v == 0 {
        return 0, false
    }
    return v, true
}
