package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gamemart/dispatch"
	"gamemart/forms"
	"gamemart/upstream"
	"gamemart/wallet"
)

// JSONFromError maps the error taxonomy onto the response envelope:
// validation → 422 with field errors, missing token → 401, busy row → 409,
// upstream rejection → its message in the banner slot, anything else → a
// generic banner (the detail stays in the server log).
func JSONFromError(c *fiber.Ctx, err error) error {
	var formErrs forms.Errors
	if errors.As(err, &formErrs) {
		return JSONValidation(c, map[string]string(formErrs))
	}
	var walletErrs wallet.ValidationErrors
	if errors.As(err, &walletErrs) {
		return JSONValidation(c, map[string]string(walletErrs))
	}
	if errors.Is(err, wallet.ErrTransition) {
		return JSONError(c, "wallet workflow out of order")
	}
	if errors.Is(err, upstream.ErrUnauthenticated) {
		return JSONUnauthorized(c, "authentication required")
	}
	if errors.Is(err, dispatch.ErrBusy) {
		return JSONStatus(c, fiber.StatusConflict, "another change to this row is still in progress")
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "request rejected by the marketplace API"
		}
		return JSONError(c, msg)
	}
	return JSONStatus(c, fiber.StatusBadGateway, "marketplace API unavailable")
}
