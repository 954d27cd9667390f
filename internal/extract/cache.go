package extract

import (
    "context"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "haulquote/internal/model"
)

// Cache memoizes extraction results in Redis, keyed by a digest of the
// enquiry text. Identical enquiries (retries, forwarded duplicates) skip the
// model entirely. Best effort: any Redis error degrades to a miss.
type Cache struct {
    rdb *redis.Client
    ttl time.Duration
    log *zap.Logger
}

func NewCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
    if rdb == nil {
        return nil
    }
    if log == nil { log = zap.NewNop() }
    if ttl <= 0 { ttl = time.Hour }
    return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(subject, body string) string {
    sum := sha256.Sum256([]byte(subject + "|" + body))
    return "extract:" + hex.EncodeToString(sum[:])
}

func (c *Cache) Get(ctx context.Context, subject, body string) (model.ShipmentRecord, bool) {
    raw, err := c.rdb.Get(ctx, cacheKey(subject, body)).Bytes()
    if err != nil {
        if err != redis.Nil {
            c.log.Warn("extraction cache read failed", zap.Error(err))
        }
        return model.ShipmentRecord{}, false
    }
    var rec model.ShipmentRecord
    if err := json.Unmarshal(raw, &rec); err != nil {
        return model.ShipmentRecord{}, false
    }
    return rec, true
}

func (c *Cache) Put(ctx context.Context, subject, body string, rec model.ShipmentRecord) {
    raw, err := json.Marshal(rec)
    if err != nil {
        return
    }
    if err := c.rdb.Set(ctx, cacheKey(subject, body), raw, c.ttl).Err(); err != nil {
        c.log.Warn("extraction cache write failed", zap.Error(err))
    }
}
