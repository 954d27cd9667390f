package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
)

var (
    // Registry is the dedicated Prometheus registry for the API
    Registry = prometheus.NewRegistry()
    // HTTPRequests counts requests by method, path, and status
    HTTPRequests = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
        []string{"method", "path", "status"},
    )
    // HTTPDuration records request durations in seconds
    HTTPDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
        []string{"method", "path", "status"},
    )

    // QuotesTotal counts quote computations by outcome (priced, invalid_input,
    // unresolvable, price_on_application)
    QuotesTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "quotes_total", Help: "Quote computations by outcome."},
        []string{"outcome"},
    )
    // QuoteAmount tracks issued quote totals in GBP
    QuoteAmount = prometheus.NewHistogram(
        prometheus.HistogramOpts{Name: "quote_amount_gbp", Help: "Issued quote totals in GBP.", Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200}},
    )
    // ExtractionRequests counts extraction runs by mode (ai, fallback, cache)
    ExtractionRequests = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "extraction_requests_total", Help: "Extraction runs by mode."},
        []string{"mode"},
    )
)

// RegisterDefault registers collectors to the default registry.
func RegisterDefault() {
    regOnce.Do(func(){
        Registry.MustRegister(HTTPRequests)
        Registry.MustRegister(HTTPDuration)
        Registry.MustRegister(QuotesTotal)
        Registry.MustRegister(QuoteAmount)
        Registry.MustRegister(ExtractionRequests)
        // Go/process collectors on our registry
        Registry.MustRegister(collectors.NewGoCollector())
        Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    })
}

var regOnce sync.Once
