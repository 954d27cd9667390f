package api

import (
    "encoding/json"
    "net/http"
    "time"

    "haulquote/internal/buildinfo"
)

// DebugJSON reports build info and the effective non-secret configuration.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
    info := map[string]any{
        "build": buildinfo.Info(),
        "time":  time.Now().UTC().Format(time.RFC3339),
        "config": map[string]any{
            "addr":            s.Cfg.Addr,
            "logLevel":        s.Cfg.LogLevel,
            "fuelRate":        s.Cfg.Pricing.FuelRate,
            "metroZones":      s.Cfg.Pricing.MetroZones,
            "defaultService":  s.Cfg.Pricing.DefaultService,
            "rateRPS":         s.Cfg.RateLimit.RPS,
            "rateBurst":       s.Cfg.RateLimit.Burst,
            "extractionModel": s.Cfg.Extraction.Model,
            "hasExtractionKey": s.Cfg.Extraction.APIKey != "",
            "hasRedis":        s.Cfg.RedisURL != "",
        },
    }
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(info)
}
