package orders

import (
	"context"
	"fmt"

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

func (h *Handler) load(c *fiber.Ctx, q upstream.OrdersQuery) (*upstream.OrdersResult, error) {
	token := middlewares.Token(c)
	params := fmt.Sprintf("service_id=%d&game_slug=%s", q.ServiceID, q.GameSlug)
	return collection.Get(c.Context(), h.Cache, collection.Orders, params,
		func(ctx context.Context) (*upstream.OrdersResult, error) {
			return h.API.Orders(ctx, token, q)
		})
}

// List serves the order table. service_id and game_slug narrow upstream;
// filter narrows locally by the ordered product's type or sold state.
func (h *Handler) List(c *fiber.Ctx) error {
	q := upstream.OrdersQuery{
		ServiceID: int64(c.QueryInt("service_id")),
		GameSlug:  c.Query("game_slug"),
	}
	res, err := h.load(c, q)
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(res.Orders, filter.Orders(), c.Query("filter", filter.CategoryAll), c.Query("q"))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":             true,
		"message":             "orders",
		"orders":              filtered,
		"today_count":         res.TodayCount,
		"yesterday_count":     res.YesterdayCount,
		"increase_percentage": res.IncreasePercentage,
		"last_month":          res.LastMonth,
	})
}

// Confirm settles a pending order. Non-pending orders have no action
// button in the table; the marketplace rejects a confirm on one anyway.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid order id")
	}
	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.ConfirmOrder(c.Context(), actor, int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "order confirmed", nil)
}

// Meta exposes the buyer-supplied delivery details. Only coin-service
// orders carry any: game uid, server id and the coin amount. Anything else
// renders nothing.
func (h *Handler) Meta(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid order id")
	}
	res, err := h.load(c, upstream.OrdersQuery{})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}

	var order *models.Order
	for i := range res.Orders {
		if res.Orders[i].ID == int64(id) {
			order = &res.Orders[i]
			break
		}
	}
	if order == nil {
		return helpers.JSONStatus(c, fiber.StatusNotFound, "order not found")
	}
	if !order.IsCoin() {
		return helpers.JSONSuccess(c, "no meta", nil)
	}

	meta := fiber.Map{"game_uid": "N/A", "server_id": "N/A", "amount": order.Product.Data.Amount}
	if v, ok := order.Meta["game_uid"]; ok && v != nil {
		meta["game_uid"] = v
	}
	if v, ok := order.Meta["server_id"]; ok && v != nil {
		meta["server_id"] = v
	}
	return helpers.JSONSuccess(c, "order meta", meta)
}
