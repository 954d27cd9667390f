package api

import (
    "net/http"
    "strconv"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "haulquote/internal/metrics"
)

type statusRecorder struct {
    http.ResponseWriter
    status int
}

func (r *statusRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
    if f, ok := r.ResponseWriter.(http.Flusher); ok { f.Flush() }
}

// Middleware wraps the mux with request ids, structured logging, metrics and
// a global rate limit. Streaming endpoints pass through the limiter once at
// connect time.
func (s *Server) Middleware(next http.Handler) http.Handler {
    limiter := rate.NewLimiter(rate.Limit(s.Cfg.RateLimit.RPS), s.Cfg.RateLimit.Burst)
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !limiter.Allow() {
            writeProblem(w, http.StatusTooManyRequests, "Rate limited", "too many requests", r.URL.Path)
            return
        }
        reqID := r.Header.Get("X-Request-Id")
        if reqID == "" { reqID = uuid.NewString() }
        w.Header().Set("X-Request-Id", reqID)

        rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
        start := time.Now()
        next.ServeHTTP(rec, r)
        dur := time.Since(start)

        status := strconv.Itoa(rec.status)
        metrics.HTTPRequests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
        metrics.HTTPDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(dur.Seconds())
        s.Log.Info("http request",
            zap.String("requestId", reqID),
            zap.String("method", r.Method),
            zap.String("path", r.URL.Path),
            zap.Int("status", rec.status),
            zap.Duration("duration", dur),
            zap.String("remote", r.RemoteAddr))
    })
}
