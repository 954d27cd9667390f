package model

import "fmt"

// Core domain types for extraction and pricing.

// ShipmentRecord is the structured record produced by the extraction
// collaborator (or its deterministic fallback). Field names mirror the
// extraction contract; optional numerics use pointers so "absent" is never
// conflated with zero.
type ShipmentRecord struct {
    FreightType  string   `json:"freight_type"`
    Quantity     int      `json:"quantity"`
    TotalWeight  string   `json:"total_weight"` // weight with units, e.g. "500 kg"
    Dimensions   []string `json:"dimensions,omitempty"`
    VolumeM3     *float64 `json:"volume_m3"`
    FromAddress  string   `json:"from_address"`
    ToAddress    string   `json:"to_address"`
    DeliveryDate string   `json:"delivery_date,omitempty"`
    ServiceType  string   `json:"service_type"` // ND or E; long names accepted

    TailLiftNeeded   bool   `json:"tail_lift_needed,omitempty"`
    MoffettDelivery  bool   `json:"moffett_delivery,omitempty"`
    DeliveryTime     string `json:"delivery_time,omitempty"` // AM, PM or empty
    LabelingRequired bool   `json:"labeling_required,omitempty"`
    AWBPrinting      bool   `json:"awb_printing,omitempty"`
    ADRSurcharge     bool   `json:"adr_surcharge,omitempty"`
    SpecialReqs      string `json:"special_requirements,omitempty"`
}

// QuoteLine is one row of the displayed breakdown. Monetary lines carry a
// 2dp-rounded Amount; descriptive lines (actual weight, billed-for) carry Text.
type QuoteLine struct {
    Label  string  `json:"label"`
    Amount float64 `json:"amount"`
    Text   string  `json:"text,omitempty"`
}

// IsText reports whether the line is descriptive rather than monetary.
func (l QuoteLine) IsText() bool { return l.Text != "" }

// SurchargeLine is one applied surcharge, already rounded to 2dp.
type SurchargeLine struct {
    Name   string  `json:"name"`
    Amount float64 `json:"amount"`
}

// Quote is the success result of the pricing engine.
type Quote struct {
    ID        string       `json:"id,omitempty"`
    Lines     []QuoteLine  `json:"quoteBreakdown"`
    Total     float64      `json:"total"`
    Details   QuoteDetails `json:"details"`
    CreatedAt string       `json:"createdAt,omitempty"`
}

// QuoteDetails is the audit/display record attached to every quote.
type QuoteDetails struct {
    Quantity       int             `json:"quantity"`
    ActualWeightKg float64         `json:"actualWeightKg"`
    BilledWeightKg float64         `json:"billedWeightKg"`
    ServiceType    string          `json:"serviceType"`
    Zone           string          `json:"zone"`
    Postcode       string          `json:"postcode"`
    PostcodeApprox bool            `json:"postcodeApproximate,omitempty"`
    FromAddress    string          `json:"fromAddress"`
    ToAddress      string          `json:"toAddress,omitempty"`
    DeliveryDate   string          `json:"deliveryDate,omitempty"`
    VolumeM3       *float64        `json:"volumeM3,omitempty"`
    Surcharges     []SurchargeLine `json:"surchargeDetails"`
    Notes          string          `json:"notes,omitempty"`
}

// DisplayMap flattens the breakdown to label -> formatted value, the shape the
// display surface consumes. Amounts are currency-formatted to two decimals.
func (q *Quote) DisplayMap() map[string]string {
    out := make(map[string]string, len(q.Lines))
    for _, l := range q.Lines {
        if l.IsText() {
            out[l.Label] = l.Text
        } else {
            out[l.Label] = fmt.Sprintf("£%.2f", l.Amount)
        }
    }
    return out
}

// QuoteErrorKind tags the failure taxonomy of the pricing engine.
type QuoteErrorKind string

const (
    // ErrInvalidInput: missing pickup address, zero/absent quantity.
    ErrInvalidInput QuoteErrorKind = "invalid_input"
    // ErrUnresolvable: no postcode in the pickup address, or no zone for it.
    ErrUnresolvable QuoteErrorKind = "unresolvable"
    // ErrPriceOnApplication: the rate table marks this tier/zone/service P.O.A.
    ErrPriceOnApplication QuoteErrorKind = "price_on_application"
)

// QuoteError is the tagged failure variant of a quote computation. The engine
// never panics past its boundary; every failure is one of these.
type QuoteError struct {
    Kind   QuoteErrorKind `json:"kind"`
    Reason string         `json:"reason"`
}

func (e *QuoteError) Error() string { return e.Reason }

func InvalidInput(format string, args ...any) *QuoteError {
    return &QuoteError{Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

func Unresolvable(format string, args ...any) *QuoteError {
    return &QuoteError{Kind: ErrUnresolvable, Reason: fmt.Sprintf(format, args...)}
}

func PriceOnApplication(reason string) *QuoteError {
    return &QuoteError{Kind: ErrPriceOnApplication, Reason: reason}
}
