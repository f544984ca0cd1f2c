package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"tobehealthy_backend/internals/constants"
)

const (
	LocMemberID   = "member_id"
	LocMemberType = "member_type"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // read cookie access_token when no Bearer header
}

// AuthJWT verifies the access token and hydrates member_id / member_type
// locals for downstream handlers.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "auth is not configured")
		}
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		rawID, _ := claims["member_id"].(string)
		memberID, err := uuid.Parse(rawID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid member_id claim")
		}
		memberType, _ := claims["member_type"].(string)
		if !constants.IsValidMemberType(memberType) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid member_type claim")
		}

		c.Locals(LocMemberID, memberID)
		c.Locals(LocMemberType, memberType)
		return c.Next()
	}
}

// MemberID reads the authenticated member id from locals.
func MemberID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocMemberID).(uuid.UUID)
	return id, ok
}

// MemberType reads the authenticated member role from locals.
func MemberType(c *fiber.Ctx) string {
	t, _ := c.Locals(LocMemberType).(string)
	return t
}

// RequireTrainer guards trainer-only routes.
func RequireTrainer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if MemberType(c) != constants.MemberTypeTrainer {
			return fiber.NewError(fiber.StatusForbidden, "Trainer role required")
		}
		return c.Next()
	}
}
