package extract

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "haulquote/internal/model"
)

const extractionPrompt = `You are a logistics expert for a UK road haulage company.
Extract the following information from the email for a quote calculation:

EMAIL SUBJECT: %s
EMAIL BODY: %s

Extract these SPECIFIC details as JSON:
{
    "freight_type": "pallets/crates/boxes/etc (infer from context)",
    "quantity": number of items,
    "total_weight": "weight with units (kg/tonnes/lbs), may be GW",
    "dimensions": ["dimension strings if mentioned"],
    "volume_m3": "volume in cubic meters if mentioned (e.g. 13.550 M3, or cbm)",
    "from_address": "pickup location address or collection address: town, Postcode",
    "to_address": "delivery destination address (include airport codes like BHX, LHR as part of address)",
    "delivery_date": "requested delivery date",
    "service_type": "ND (Next Day) or E (Economy) - default to ND if Economy not determined",
    "tail_lift_needed": boolean,
    "moffett_delivery": boolean,
    "delivery_time": "AM/PM/None",
    "labeling_required": boolean,
    "awb_printing": boolean,
    "adr_surcharge": boolean,
    "special_requirements": "any special notes"
}

IMPORTANT RULES:
- If delivery mentions airport codes (BHX, LHR, LGW, MAN, STN, EDI, GLA), include them in to_address
- Service_type: ND for urgent/next-day, E for standard/economy
- Extract postcodes from addresses when possible
- Convert all weights to kg in the format "X kg"
- Extract volume in cubic meters if mentioned
- Return empty strings/arrays/false for missing information`

// Client calls an OpenAI-compatible chat completions endpoint. A token-bucket
// limiter caps the outbound request rate regardless of inbound traffic.
type Client struct {
    httpc   *http.Client
    baseURL string
    model   string
    apiKey  string
    limiter *rate.Limiter
    log     *zap.Logger
}

// NewClient returns nil when apiKey is empty: extraction then runs on the
// fallback path only.
func NewClient(baseURL, modelName, apiKey string, timeout time.Duration, rps float64, log *zap.Logger) *Client {
    if apiKey == "" {
        return nil
    }
    if log == nil { log = zap.NewNop() }
    if timeout <= 0 { timeout = 30 * time.Second }
    if rps <= 0 { rps = 1 }
    return &Client{
        httpc:   &http.Client{Timeout: timeout},
        baseURL: baseURL,
        model:   modelName,
        apiKey:  apiKey,
        limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
        log:     log,
    }
}

type chatRequest struct {
    Model          string        `json:"model"`
    Messages       []chatMessage `json:"messages"`
    Temperature    float64       `json:"temperature"`
    ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type respFormat struct {
    Type string `json:"type"`
}

type chatResponse struct {
    Choices []struct {
        Message struct {
            Content string `json:"content"`
        } `json:"message"`
    } `json:"choices"`
}

// Extract asks the model for a structured record and normalizes the reply.
func (c *Client) Extract(ctx context.Context, subject, body string) (model.ShipmentRecord, error) {
    if err := c.limiter.Wait(ctx); err != nil {
        return model.ShipmentRecord{}, err
    }

    payload, err := json.Marshal(chatRequest{
        Model:          c.model,
        Messages:       []chatMessage{{Role: "user", Content: fmt.Sprintf(extractionPrompt, subject, body)}},
        Temperature:    1,
        ResponseFormat: respFormat{Type: "json_object"},
    })
    if err != nil {
        return model.ShipmentRecord{}, err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
    if err != nil {
        return model.ShipmentRecord{}, err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.apiKey)

    resp, err := c.httpc.Do(req)
    if err != nil {
        return model.ShipmentRecord{}, err
    }
    defer resp.Body.Close()

    raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        return model.ShipmentRecord{}, err
    }
    if resp.StatusCode != http.StatusOK {
        return model.ShipmentRecord{}, fmt.Errorf("extraction api: status %d: %s", resp.StatusCode, truncate(raw, 200))
    }

    var cr chatResponse
    if err := json.Unmarshal(raw, &cr); err != nil {
        return model.ShipmentRecord{}, fmt.Errorf("extraction api: decode envelope: %w", err)
    }
    if len(cr.Choices) == 0 {
        return model.ShipmentRecord{}, fmt.Errorf("extraction api: empty choices")
    }
    rec, err := normalizeRaw([]byte(cr.Choices[0].Message.Content))
    if err != nil {
        return model.ShipmentRecord{}, fmt.Errorf("extraction api: decode record: %w", err)
    }
    return rec, nil
}

func truncate(b []byte, n int) string {
    if len(b) <= n {
        return string(b)
    }
    return string(b[:n]) + "..."
}
