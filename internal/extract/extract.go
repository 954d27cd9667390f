// Package extract turns free-text enquiry emails into structured shipment
// records. The primary path is an OpenAI-compatible chat completion; a
// deterministic regex fallback guarantees a record comes back even when the
// model is unreachable, and a Redis cache short-circuits repeat enquiries.
package extract

import (
    "context"

    "go.uber.org/zap"

    "haulquote/internal/model"
)

// Mode records which path produced a shipment record.
type Mode string

const (
    ModeAI       Mode = "ai"
    ModeFallback Mode = "fallback"
    ModeCache    Mode = "cache"
)

// Extractor produces a shipment record from an enquiry. Implementations never
// fail outright: the worst case is a sparse fallback record the pricing
// engine will reject on its own validation.
type Extractor interface {
    Extract(ctx context.Context, subject, body string) (model.ShipmentRecord, Mode)
}

// Service is the production Extractor: cache, then model, then fallback.
type Service struct {
    client *Client // nil when no API key is configured
    cache  *Cache  // nil when Redis is not configured
    log    *zap.Logger
}

func NewService(client *Client, cache *Cache, log *zap.Logger) *Service {
    if log == nil { log = zap.NewNop() }
    return &Service{client: client, cache: cache, log: log}
}

func (s *Service) Extract(ctx context.Context, subject, body string) (model.ShipmentRecord, Mode) {
    if s.cache != nil {
        if rec, ok := s.cache.Get(ctx, subject, body); ok {
            return rec, ModeCache
        }
    }
    if s.client != nil {
        rec, err := s.client.Extract(ctx, subject, body)
        if err == nil {
            if s.cache != nil { s.cache.Put(ctx, subject, body, rec) }
            return rec, ModeAI
        }
        s.log.Warn("ai extraction failed, using fallback", zap.Error(err))
    }
    return Fallback(subject, body), ModeFallback
}
