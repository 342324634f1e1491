package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter allows max requests per expiration window for each remote IP.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return newLimiter(max, expiration, func(c *fiber.Ctx) string {
		return "ip:" + c.IP()
	})
}

// ClientRateLimiter allows max requests per expiration window for each
// returning browser client. Requests that arrived without a client cookie
// share their IP's bucket.
func ClientRateLimiter(max int, expiration time.Duration) fiber.Handler {
	return newLimiter(max, expiration, clientKey)
}

func clientKey(c *fiber.Ctx) string {
	if id := GetClientID(c); id != "" && IsReturningClient(c) {
		return "client:" + id
	}
	return "ip:" + c.IP()
}

func newLimiter(max int, expiration time.Duration, key func(*fiber.Ctx) string) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   expiration,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(expiration.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    fiber.StatusTooManyRequests,
				"message": "Too many submissions, please wait before trying again",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
