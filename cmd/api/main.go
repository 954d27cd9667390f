package main

import (
    "log"
    "net/http"
    "os"
    "time"

    "github.com/prometheus/client_golang/prometheus/promhttp"
    "go.uber.org/zap"

    "haulquote/internal/api"
    "haulquote/internal/config"
    "haulquote/internal/logging"
    "haulquote/internal/metrics"
)

func main() {
    cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
    if err != nil {
        log.Fatalf("failed to load config: %v", err)
    }
    logger, err := logging.New(cfg.LogLevel)
    if err != nil {
        log.Fatalf("failed to init logger: %v", err)
    }
    defer func() { _ = logger.Sync() }()

    metrics.RegisterDefault()

    srvDeps, err := api.NewServer(cfg, logger)
    if err != nil {
        logger.Fatal("failed to init server", zap.Error(err))
    }

    mux := http.NewServeMux()

    // Quotes
    mux.HandleFunc("/v1/quotes", srvDeps.QuotesHandler)
    mux.HandleFunc("/v1/quotes/preview", srvDeps.QuotePreviewHandler)
    mux.HandleFunc("/v1/quotes/stream", srvDeps.QuoteStreamHandler)
    mux.HandleFunc("/v1/quotes/ws", srvDeps.QuotesWSHandler)

    // Datasets
    mux.HandleFunc("/v1/zones", srvDeps.ZonesHandler)
    mux.HandleFunc("/v1/tables/health", srvDeps.TablesHealthHandler)

    // Health
    mux.HandleFunc("/healthz", srvDeps.HealthHandler)
    mux.HandleFunc("/readyz", srvDeps.ReadyHandler)

    // Observability
    mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
    mux.HandleFunc("/debug", srvDeps.DebugJSON)

    srv := &http.Server{
        Addr:              cfg.Addr,
        Handler:           srvDeps.Middleware(mux),
        ReadHeaderTimeout: 5 * time.Second,
    }

    logger.Info("API listening", zap.String("addr", cfg.Addr))
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        logger.Fatal("server error", zap.Error(err))
    }
}
