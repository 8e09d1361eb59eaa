package reviews

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

func (h *Handler) List(c *fiber.Ctx) error {
	items, err := collection.Get(c.Context(), h.Cache, collection.Reviews, "",
		func(ctx context.Context) ([]models.Review, error) {
			return h.API.Reviews(ctx)
		})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(items, filter.Reviews(), filter.CategoryAll, c.Query("q"))
	return helpers.JSONSuccess(c, "reviews", filtered)
}

// Delete removes an abusive or spam review.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid review id")
	}
	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.DeleteReview(c.Context(), actor, int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "review deleted", nil)
}
