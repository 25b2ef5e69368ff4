package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tokogitar/tokogitar/internal/http/response"
	"github.com/tokogitar/tokogitar/internal/logger"
)

// RateLimitRule describes one fixed-window counter.
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	Message       string
}

// KeyFunc derives the counter key part from the request.
type KeyFunc func(c *gin.Context) (string, bool)

// KeyByIP keys the counter on the client address.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) (string, bool) {
		ip := strings.TrimSpace(c.ClientIP())
		if ip == "" {
			return "", false
		}
		return "ip:" + ip, true
	}
}

// KeyByIPAndJSONField keys the counter on the client address plus one
// field of the JSON body, so one address cannot hammer many accounts
// and one account cannot be locked out from many addresses.
func KeyByIPAndJSONField(field string) KeyFunc {
	return func(c *gin.Context) (string, bool) {
		ip := strings.TrimSpace(c.ClientIP())
		if ip == "" {
			return "", false
		}

		fieldValue := ""
		if c.Request != nil && c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err == nil {
				// The handler still needs to bind the body later.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

				var payload map[string]interface{}
				if err := json.Unmarshal(body, &payload); err == nil {
					if raw, ok := payload[field]; ok {
						if s, ok := raw.(string); ok {
							fieldValue = strings.ToLower(strings.TrimSpace(s))
						}
					}
				}
			}
		}

		if fieldValue == "" {
			return "ip:" + ip, true
		}
		return "ip:" + ip + ":" + field + ":" + fieldValue, true
	}
}

// rateLimitScript counts one hit and reports the current total plus
// the window ttl in one round trip.
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
    redis.call("EXPIRE", KEYS[1], tonumber(ARGV[1]))
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware enforces a fixed-window limit backed by redis.
// Without redis the request passes, traded off against availability.
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		keyPart, ok := keyFn(c)
		if !ok {
			c.Next()
			return
		}

		window := rule.WindowSeconds
		if window <= 0 {
			window = 60
		}
		maxRequests := rule.MaxRequests
		if maxRequests <= 0 {
			maxRequests = 5
		}

		key := fmt.Sprintf("ratelimit:%s:%s", rule.Prefix, keyPart)
		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, window).Result()
		if err != nil {
			logger.Warnw("rate_limit_check_failed", "key", key, "error", err)
			c.Next()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) != 2 {
			c.Next()
			return
		}
		current := toInt64(values[0])

		if current > int64(maxRequests) {
			if rule.BlockSeconds > window {
				// Extend the penalty past the counting window.
				if err := client.Expire(c.Request.Context(), key, time.Duration(rule.BlockSeconds)*time.Second).Err(); err != nil {
					logger.Warnw("rate_limit_block_extend_failed", "key", key, "error", err)
				}
			}
			message := rule.Message
			if message == "" {
				message = "terlalu banyak permintaan, coba lagi nanti"
			}
			response.Error(c, response.CodeTooManyRequests, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var parsed int64
		_, _ = fmt.Sscanf(v, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
