package api

import (
    "time"

    redis "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "haulquote/internal/config"
    "haulquote/internal/extract"
    "haulquote/internal/pricing"
    "haulquote/internal/tables"
)

// Server holds the wired dependencies behind every handler.
type Server struct {
    Cfg       config.Config
    Log       *zap.Logger
    Tables    *tables.Tables
    Engine    *pricing.Engine
    Extractor extract.Extractor
    Broker    EventBroker

    rdb     *redis.Client
    started time.Time
}

// NewServer loads the datasets and wires the engine, extractor and broker.
// Without REDIS_URL everything runs in-process: in-memory broker, no
// extraction cache.
func NewServer(cfg config.Config, log *zap.Logger) (*Server, error) {
    if log == nil { log = zap.NewNop() }

    tb, err := tables.Load(cfg.Data.PricingCSV, cfg.Data.ZonesCSV, cfg.Data.SurchargesCSV, log)
    if err != nil {
        return nil, err
    }
    engine := pricing.NewEngine(tb, pricing.Options{
        FuelRate:           cfg.Pricing.FuelRate,
        MetroZones:         cfg.Pricing.MetroZones,
        MoffettMinQuantity: cfg.Pricing.MoffettMinQuantity,
        DefaultService:     cfg.Pricing.DefaultService,
    })

    var rdb *redis.Client
    var broker EventBroker = NewBroker()
    if cfg.RedisURL != "" {
        opt, err := redis.ParseURL(cfg.RedisURL)
        if err != nil {
            log.Warn("invalid redis url, falling back to in-memory broker", zap.Error(err))
        } else {
            rdb = redis.NewClient(opt)
            broker = NewRedisBroker(rdb)
        }
    }

    client := extract.NewClient(
        cfg.Extraction.BaseURL,
        cfg.Extraction.Model,
        cfg.Extraction.APIKey,
        time.Duration(cfg.Extraction.TimeoutSec)*time.Second,
        cfg.Extraction.RPS,
        log,
    )
    if client == nil {
        log.Info("no extraction api key configured, running fallback-only")
    }
    cache := extract.NewCache(rdb, time.Duration(cfg.Extraction.CacheTTLMin)*time.Minute, log)

    return &Server{
        Cfg:       cfg,
        Log:       log,
        Tables:    tb,
        Engine:    engine,
        Extractor: extract.NewService(client, cache, log),
        Broker:    broker,
        rdb:       rdb,
        started:   time.Now(),
    }, nil
}
