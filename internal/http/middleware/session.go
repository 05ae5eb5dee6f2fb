package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"meterportal/internal/model"
)

// UserLocalKey is the key used to store the authenticated user in Fiber's context locals.
const UserLocalKey = "user"

// SessionParser validates a session token.
type SessionParser interface {
	Parse(token string) (model.User, error)
}

// RequireSession rejects requests without a valid "Authorization: Bearer <token>" session.
// onError renders the rejection so the error envelope stays in the handler package.
func RequireSession(sessions SessionParser, onError fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return onError(c)
		}
		user, err := sessions.Parse(token)
		if err != nil {
			return onError(c)
		}
		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the user stored by RequireSession.
func UserFromCtx(c *fiber.Ctx) (model.User, bool) {
	u, ok := c.Locals(UserLocalKey).(model.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
