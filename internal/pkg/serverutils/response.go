package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse builds the `{success: true, ...}` envelope used by every
// successful route.
func SuccessResponse(fields fiber.Map) fiber.Map {
	res := fiber.Map{"success": true}
	for k, v := range fields {
		res[k] = v
	}
	return res
}

// ErrorResponse builds the `{error: "<message>"}` envelope.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}
