package api

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "haulquote/internal/metrics"
    "haulquote/internal/model"
)

// QuoteRequest is an inbound enquiry email.
type QuoteRequest struct {
    Subject string `json:"subject"`
    Body    string `json:"body"`
}

// QuotesHandler handles POST /v1/quotes: extract the enquiry, price it,
// publish the result to the quote feed.
func (s *Server) QuotesHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    var req QuoteRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
        return
    }
    if req.Subject == "" && req.Body == "" {
        writeProblem(w, http.StatusBadRequest, "Empty enquiry", "subject or body required", r.URL.Path)
        return
    }

    rec, mode := s.Extractor.Extract(r.Context(), req.Subject, req.Body)
    metrics.ExtractionRequests.WithLabelValues(string(mode)).Inc()

    q, qe := s.Engine.Quote(rec)
    if qe != nil {
        metrics.QuotesTotal.WithLabelValues(string(qe.Kind)).Inc()
        s.Log.Info("quote rejected",
            zap.String("kind", string(qe.Kind)),
            zap.String("reason", qe.Reason),
            zap.String("extraction", string(mode)))
        writeQuoteError(w, qe, r.URL.Path)
        return
    }
    q.ID = uuid.NewString()
    q.CreatedAt = time.Now().UTC().Format(time.RFC3339)
    metrics.QuotesTotal.WithLabelValues("priced").Inc()
    metrics.QuoteAmount.Observe(q.Total)

    s.Broker.Publish(TopicQuotes, Event{Type: "quote.priced", Data: map[string]any{
        "id":       q.ID,
        "total":    q.Total,
        "zone":     q.Details.Zone,
        "service":  q.Details.ServiceType,
        "postcode": q.Details.Postcode,
    }})
    s.Log.Info("quote priced",
        zap.String("id", q.ID),
        zap.Float64("total", q.Total),
        zap.String("zone", q.Details.Zone),
        zap.String("extraction", string(mode)))

    writeJSON(w, http.StatusOK, map[string]any{
        "quote":      q,
        "display":    q.DisplayMap(),
        "record":     rec,
        "extraction": mode,
    })
}

// QuotePreviewHandler handles POST /v1/quotes/preview: price an
// already-structured record. No ID, no event, nothing published.
func (s *Server) QuotePreviewHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    var rec model.ShipmentRecord
    if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
        writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
        return
    }
    q, qe := s.Engine.Quote(rec)
    if qe != nil {
        metrics.QuotesTotal.WithLabelValues(string(qe.Kind)).Inc()
        writeQuoteError(w, qe, r.URL.Path)
        return
    }
    metrics.QuotesTotal.WithLabelValues("priced").Inc()
    writeJSON(w, http.StatusOK, map[string]any{"quote": q, "display": q.DisplayMap()})
}

// ZonesHandler handles GET /v1/zones: the compiled zone rule list, in match
// priority order.
func (s *Server) ZonesHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"rules": s.Engine.Zones().Rules()})
}

// TablesHealthHandler handles GET /v1/tables/health: dataset row counts and
// tiers, for spotting a misdeployed or empty dataset.
func (s *Server) TablesHealthHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "pricingRows":   len(s.Tables.Pricing),
        "zoneRows":      len(s.Tables.Zones),
        "surchargeRows": len(s.Tables.Surcharges),
        "weightTiers":   s.Tables.Tiers(),
        "loaded":        len(s.Tables.Pricing) > 0 && len(s.Tables.Zones) > 0,
    })
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "uptimeSec": int(time.Since(s.started).Seconds())})
}

// ReadyHandler reports ready once the datasets are usable; with Redis
// configured it must also answer a ping.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
    if len(s.Tables.Pricing) == 0 || len(s.Tables.Zones) == 0 {
        writeProblem(w, http.StatusServiceUnavailable, "Not ready", "datasets not loaded", r.URL.Path)
        return
    }
    if s.rdb != nil {
        if err := s.rdb.Ping(r.Context()).Err(); err != nil {
            writeProblem(w, http.StatusServiceUnavailable, "Not ready", "redis: "+err.Error(), r.URL.Path)
            return
        }
    }
    writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
