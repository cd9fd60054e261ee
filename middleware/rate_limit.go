package middleware

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-redis/redis/v8"

    "scholarly-checkout-api/models"
)

type RateLimiter struct {
    client *redis.Client
}

type RateLimitConfig struct {
    Requests int
    Window   time.Duration
    Message  string
}

// Verification endpoints draw the tightest limits since they drive email
// sends and brute-forceable codes.
var defaultConfigs = map[string]RateLimitConfig{
    "/api/checkout/send-verification": {
        Requests: 5,
        Window:   time.Minute * 15,
        Message:  "Too many verification emails requested. Please try again in 15 minutes.",
    },
    "/api/checkout/resend-code": {
        Requests: 5,
        Window:   time.Minute * 15,
        Message:  "Too many verification emails requested. Please try again in 15 minutes.",
    },
    "/api/checkout/verify-code": {
        Requests: 10,
        Window:   time.Minute * 10,
        Message:  "Too many verification attempts. Please wait 10 minutes.",
    },
    "/api/checkout/validate-promo": {
        Requests: 10,
        Window:   time.Minute * 5,
        Message:  "Too many promo code attempts. Please wait 5 minutes.",
    },
    "/api/checkout": {
        Requests: 5,
        Window:   time.Minute * 10,
        Message:  "Too many checkout attempts. Please wait 10 minutes.",
    },
    "/api/auth/login": {
        Requests: 5,
        Window:   time.Minute * 15,
        Message:  "Too many login attempts. Please try again in 15 minutes.",
    },
    "default": {
        Requests: 60,
        Window:   time.Minute,
        Message:  "Rate limit exceeded. Please slow down your requests.",
    },
}

func NewRateLimiter(redisURL string) (*RateLimiter, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil {
        return nil, fmt.Errorf("invalid Redis URL for rate limiter: %v", err)
    }

    client := redis.NewClient(opt)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %v", err)
    }

    return &RateLimiter{client: client}, nil
}

func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            if r.Method == http.MethodOptions {
                next.ServeHTTP(w, r)
                return
            }

            config := rl.getConfigForEndpoint(r.URL.Path)
            key := rl.getRateLimitKey(r)

            allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
            if err != nil {
                log.Printf("Rate limit check error: %v", err)
                // On redis trouble, let the request through rather than
                // failing the checkout.
                next.ServeHTTP(w, r)
                return
            }

            w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
            w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
            w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

            if !allowed {
                log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

                w.Header().Set("Content-Type", "application/json")
                w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
                w.WriteHeader(http.StatusTooManyRequests)

                json.NewEncoder(w).Encode(models.APIResponse{
                    Status:  "error",
                    Message: config.Message,
                })
                return
            }

            next.ServeHTTP(w, r)
        })
    }
}

func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
    if idx := strings.Index(path, "?"); idx != -1 {
        path = path[:idx]
    }

    if config, exists := defaultConfigs[path]; exists {
        return config
    }

    if strings.HasPrefix(path, "/api/dashboard/") {
        return RateLimitConfig{
            Requests: 30,
            Window:   time.Minute,
            Message:  "Too many dashboard requests. Please slow down.",
        }
    }

    return defaultConfigs["default"]
}

func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
    ip := rl.getClientIP(r)
    return fmt.Sprintf("rate_limit:%s:%s", ip, r.URL.Path)
}

func (rl *RateLimiter) getClientIP(r *http.Request) string {
    if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
        ips := strings.Split(ip, ",")
        return strings.TrimSpace(ips[0])
    }

    if ip := r.Header.Get("X-Real-IP"); ip != "" {
        return ip
    }

    ip := r.RemoteAddr
    if idx := strings.LastIndex(ip, ":"); idx != -1 {
        ip = ip[:idx]
    }
    return ip
}

// checkRateLimit counts the request against a fixed window in redis.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (bool, int, time.Time, error) {
    now := time.Now()
    windowStart := now.Truncate(config.Window)
    resetTime := windowStart.Add(config.Window)

    windowKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

    count, err := rl.client.Incr(ctx, windowKey).Result()
    if err != nil {
        return false, 0, resetTime, fmt.Errorf("failed to increment rate limit counter: %v", err)
    }

    if count == 1 {
        if err := rl.client.Expire(ctx, windowKey, config.Window).Err(); err != nil {
            log.Printf("Warning: failed to set TTL on rate limit key %s: %v", windowKey, err)
        }
    }

    remaining := config.Requests - int(count)
    if remaining < 0 {
        remaining = 0
    }

    return int(count) <= config.Requests, remaining, resetTime, nil
}

func (rl *RateLimiter) Close() error {
    return rl.client.Close()
}
