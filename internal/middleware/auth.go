package middleware

import (
	"context"
	"strings"

	"classifieds/internal/auth"
	"classifieds/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LocalUserID is the Fiber locals key holding the authenticated user id.
const LocalUserID = "userID"

// IdentityKey is the context key under which the verified identity is stored.
const IdentityKey contextKey = "identity"

// TokenVerifier parses a bearer token into a caller identity.
type TokenVerifier interface {
	Parse(token string) (auth.Identity, error)
}

// AuthRequired rejects requests without a valid bearer token and attaches the
// decoded identity to Fiber locals and the request context.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.TrimSpace(header) == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Missing token"))
		}

		tokenString := bearerToken(header)
		if tokenString == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid token"))
		}

		identity, err := verifier.Parse(tokenString)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid token"))
		}

		c.Locals(LocalUserID, identity.UserID)

		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
		ctx = context.WithValue(ctx, IdentityKey, identity)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is matched
// case-insensitively.
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(auth.Identity)
	return id, ok && id.UserID != 0
}
