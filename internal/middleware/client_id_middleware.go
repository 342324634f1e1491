package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ClientCookie = "scorecard_client"
	clientIDKey  = "clientID"
	returningKey = "clientReturning"
)

// ClientID tags every request with a stable browser id, issuing a cookie on
// first contact.
func ClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(ClientCookie)
		_, err := uuid.Parse(id)
		c.Locals(returningKey, err == nil)
		if err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(30 * 24 * time.Hour),
			})
		}
		c.Locals(clientIDKey, id)
		return c.Next()
	}
}

// GetClientID returns the id set by ClientID, or "" outside that middleware.
func GetClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(clientIDKey).(string)
	return id
}

// IsReturningClient reports whether the request carried a valid client
// cookie rather than being issued one just now.
func IsReturningClient(c *fiber.Ctx) bool {
	ok, _ := c.Locals(returningKey).(bool)
	return ok
}
