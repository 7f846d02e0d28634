package security

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carebridge-backend/pkg/logger"
	"carebridge-backend/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

type LoginTrackerConfig struct {
	MaxAttempts   int           // failures before a block
	AttemptWindow time.Duration // fixed window the failures are counted in
	BlockDuration time.Duration
	UseIPTracking bool // also count and block the client IP
}

func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker counts failed logins per email (and IP) in Redis and blocks
// the subject once MaxAttempts is reached. Without Redis it never blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	logger *SecurityLogger
	client func() *goredis.Client
}

func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	defaults := DefaultLoginTrackerConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = defaults.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = defaults.BlockDuration
	}
	return &LoginTracker{
		config: config,
		logger: DefaultLogger(),
		client: redis.Client,
	}
}

// incrOnce sets the TTL on the first increment only, so the window is fixed.
var incrOnce = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

type loginKeys struct {
	failEmail, failIP       string
	blockedEmail, blockedIP string
}

func (lt *LoginTracker) keys(email, ip string) loginKeys {
	email = strings.ToLower(strings.TrimSpace(email))
	k := loginKeys{
		failEmail:    "carebridge:fail:login:user:" + email,
		blockedEmail: "carebridge:blocked:login:user:" + email,
	}
	if lt.config.UseIPTracking && ip != "" {
		k.failIP = "carebridge:fail:login:ip:" + ip
		k.blockedIP = "carebridge:blocked:login:ip:" + ip
	}
	return k
}

func nonEmpty(keys ...string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// IsBlocked reports whether the email or IP is currently blocked.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	client := lt.client()
	if client == nil {
		return false, nil
	}

	k := lt.keys(email, ip)
	n, err := client.Exists(ctx, nonEmpty(k.blockedEmail, k.blockedIP)...).Result()
	if err != nil {
		return false, fmt.Errorf("check login block: %w", err)
	}
	return n > 0, nil
}

// RecordFailedAttempt logs the failure, counts it and blocks the subject when
// the limit is reached. Returns (blocked, attempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")

	client := lt.client()
	if client == nil {
		return false, 0, nil
	}

	k := lt.keys(email, ip)
	ttl := int(lt.config.AttemptWindow.Seconds())

	attempts, err := incrOnce.Run(ctx, client, []string{k.failEmail}, ttl).Int()
	if err != nil {
		return false, 0, fmt.Errorf("count failed login: %w", err)
	}
	if k.failIP != "" {
		if err := incrOnce.Run(ctx, client, []string{k.failIP}, ttl).Err(); err != nil {
			logger.Log.Warn("Failed to count login failure by IP", "error", err)
		}
	}

	if attempts < lt.config.MaxAttempts {
		return false, attempts, nil
	}

	if err := client.Set(ctx, k.blockedEmail, "1", lt.config.BlockDuration).Err(); err != nil {
		return true, attempts, fmt.Errorf("block email: %w", err)
	}
	if k.blockedIP != "" {
		// The email block already holds; the IP block is best effort.
		if err := client.Set(ctx, k.blockedIP, "1", lt.config.BlockDuration).Err(); err != nil {
			logger.Log.Warn("Failed to block IP after repeated login failures", "error", err)
		}
	}

	lt.logger.LogBlockCreated(ctx, SubjectEmail, email, ip, requestID, int(lt.config.BlockDuration.Minutes()))
	lt.logger.LogLoginBlocked(ctx, email, ip, userAgent, requestID)
	return true, attempts, nil
}

// ClearAttempts resets the failure counters after a successful login.
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	client := lt.client()
	if client == nil {
		return nil
	}

	k := lt.keys(email, ip)
	if err := client.Del(ctx, nonEmpty(k.failEmail, k.failIP)...).Err(); err != nil {
		return fmt.Errorf("clear login attempts: %w", err)
	}
	return nil
}
