package topups

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gamemart/collection"
	"gamemart/dispatch"
	"gamemart/filter"
	"gamemart/helpers"
	"gamemart/middlewares"
	"gamemart/models"
	"gamemart/upstream"
)

type Handler struct {
	API      *upstream.Client
	Cache    *collection.Cache
	Dispatch *dispatch.Dispatcher
}

// List serves the top-up queue, searchable by id, username and payment
// method.
func (h *Handler) List(c *fiber.Ctx) error {
	token := middlewares.Token(c)
	items, err := collection.Get(c.Context(), h.Cache, collection.TopUps, "",
		func(ctx context.Context) ([]models.TopUp, error) {
			return h.API.TopUpOrders(ctx, token)
		})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(items, filter.TopUps(), filter.CategoryAll, c.Query("q"))
	return helpers.JSONSuccess(c, "top-up orders", filtered)
}

// Confirm approves a funding request after the receipt check.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid top-up id")
	}
	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.ConfirmTopUp(c.Context(), actor, int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "top-up confirmed", nil)
}
