package security

import (
	"context"
	"fmt"
	"time"

	"carebridge-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// slidingWindow admits ARGV[1] hits per ARGV[2] seconds on a sorted set.
// Returns 1 when the hit was recorded, 0 when the window is full.
var slidingWindow = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
if redis.call('ZCARD', key) >= limit then
    return 0
end
redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`)

type uploadWindow struct {
	key    string
	limit  int
	period time.Duration
	retry  int
}

// UploadLimiter throttles avatar uploads per client IP and per user.
type UploadLimiter struct {
	perMinute int
	perDay    int
	client    func() *goredis.Client
}

// NewUploadLimiter falls back to 10 per minute and 50 per day for
// non-positive limits.
func NewUploadLimiter(perMinute, perDay int) *UploadLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{perMinute: perMinute, perDay: perDay, client: redis.Client}
}

func (ul *UploadLimiter) windows(ip string, userID uint) []uploadWindow {
	windows := []uploadWindow{{
		key:    "carebridge:ratelimit:upload:ip:" + ip,
		limit:  ul.perMinute,
		period: time.Minute,
		retry:  60,
	}}
	if userID != 0 {
		windows = append(windows, uploadWindow{
			key:    fmt.Sprintf("carebridge:ratelimit:upload:user:%d", userID),
			limit:  ul.perDay,
			period: 24 * time.Hour,
			retry:  3600,
		})
	}
	return windows
}

// AllowUpload reports whether another upload is allowed and, if not, how many
// seconds to wait. Without Redis every upload is allowed; a Redis error denies.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip string, userID uint) (bool, int, error) {
	client := ul.client()
	if client == nil {
		return true, 0, nil
	}

	now := time.Now().Unix()
	for _, w := range ul.windows(ip, userID) {
		admitted, err := slidingWindow.Run(ctx, client, []string{w.key}, w.limit, int(w.period.Seconds()), now).Int()
		if err != nil {
			return false, w.retry, fmt.Errorf("upload limit check: %w", err)
		}
		if admitted == 0 {
			return false, w.retry, nil
		}
	}
	return true, 0, nil
}
