package helpers

import "github.com/gofiber/fiber/v2"

// Response envelope used by every dashboard endpoint; identical in shape to
// the upstream marketplace API so the browser handles one format.

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func JSONStatus(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func JSONUnauthorized(c *fiber.Ctx, message string) error {
	return JSONStatus(c, fiber.StatusUnauthorized, message)
}

// JSONValidation reports field-level validation failures; the form shows
// them in the same banner slot as remote errors.
func JSONValidation(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "validation failed",
		"errors":  errs,
		"data":    nil,
	})
}
