package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/pulse/errors"
)

// Gin context keys set by the identity middleware.
const (
	ContextSubscriberID   = "subscriber_id"
	ContextSubscriberName = "subscriber_name"
)

// Identity returns a Gin middleware that resolves the caller's subscriber
// identity from a Bearer token. When allowQuery is set, a userId query
// parameter is accepted as a fallback for call sites that cannot attach
// headers (the browser EventSource API among them). Requests with neither
// are rejected before any handler state is allocated.
func Identity(svc *Service, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c, "Invalid authorization header format.")
				return
			}
			if svc == nil {
				abortUnauthorized(c, "Token verification is not configured.")
				return
			}
			claims, err := svc.Parse(parts[1])
			if err != nil {
				abortUnauthorized(c, "Invalid token.")
				return
			}
			c.Set(ContextSubscriberID, claims.Subject)
			c.Set(ContextSubscriberName, claims.Name)
			c.Next()
			return
		}

		if allowQuery {
			if id := c.Query("userId"); id != "" {
				c.Set(ContextSubscriberID, id)
				c.Next()
				return
			}
		}

		abortUnauthorized(c, "")
	}
}

// SubscriberID returns the resolved subscriber identity from the Gin context.
func SubscriberID(c *gin.Context) string {
	return c.GetString(ContextSubscriberID)
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := errors.Unauthorized(message)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
