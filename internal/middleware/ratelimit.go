package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	rd "github.com/redis/go-redis/v9"
)

// luaRateLimit is an atomic sliding-window counter.
// KEYS[1]=window key, ARGV[1]=now, ARGV[2]=window start, ARGV[3]=window
// seconds, ARGV[4]=member, ARGV[5]=limit. Returns -1 when over limit.
const luaRateLimit = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowSec = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('EXPIRE', key, windowSec)
  return count + 1
else
  return -1
end
`

// RateLimitByIP throttles the public order lookup, which is guessable
// with an order number plus 4 phone digits. A nil client disables the
// limiter; Redis errors fail open so an outage never blocks lookups.
func RateLimitByIP(rdb *rd.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || limit <= 0 {
				return next(c)
			}

			key := fmt.Sprintf("rate_limit:order_lookup:ip:%s", c.RealIP())
			now := time.Now().Unix()
			windowSec := int64(window.Seconds())
			member := fmt.Sprintf("%d-%d", now, time.Now().UnixNano())

			res, err := rdb.Eval(c.Request().Context(), luaRateLimit, []string{key},
				now, now-windowSec, windowSec, member, limit).Int()
			if err != nil {
				return next(c)
			}
			if res < 0 {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate_limited"})
			}
			return next(c)
		}
	}
}
