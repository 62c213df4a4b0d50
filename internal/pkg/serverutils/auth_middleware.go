package serverutils

import (
	"errors"

	"keepwise-be/internal/entity"
	"keepwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const AuthUserKey = "auth_user"

// AuthMiddleware resolves the bearer token to an identity and stores it in
// the request locals. Missing token -> 401, failed verification -> 403.
// When no identity provider is configured the verifier resolves everyone to
// the anonymous identity and the middleware passes all requests through.
func AuthMiddleware(tokens service.ITokenService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := tokens.Verify(ctx.Context(), ctx.Get("Authorization"))
		if err != nil {
			if errors.Is(err, entity.ErrTokenMissing) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Access token required"))
			}
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Invalid or expired token"))
		}

		ctx.Locals(AuthUserKey, user)
		return ctx.Next()
	}
}

// AuthUser returns the identity resolved by AuthMiddleware.
func AuthUser(ctx *fiber.Ctx) *entity.AuthUser {
	user, _ := ctx.Locals(AuthUserKey).(*entity.AuthUser)
	return user
}
