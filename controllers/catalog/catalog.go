// Package catalog manages products, services and games: cached listings
// with filter/search, and create/edit/delete flows that validate locally
// before dispatching upstream.
package catalog

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gamemart/collection"
	"gamemart/dispatch"
	"gamemart/filter"
	"gamemart/forms"
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

func (h *Handler) actor(c *fiber.Ctx) dispatch.Actor {
	return dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
}

// --- products ---

func (h *Handler) Products(c *fiber.Ctx) error {
	items, err := collection.Get(c.Context(), h.Cache, collection.Products, "",
		func(ctx context.Context) ([]models.Product, error) {
			return h.API.AllProducts(ctx)
		})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(items, filter.Products(), c.Query("filter", filter.CategoryAll), c.Query("q"))
	return helpers.JSONSuccess(c, "products", filtered)
}

func (h *Handler) Product(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid product id")
	}
	product, err := h.API.Product(c.Context(), int64(id))
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "product", product)
}

func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateProduct(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.CreateProduct(c.Context(), h.actor(c), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "product created", nil)
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid product id")
	}
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateProduct(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.UpdateProduct(c.Context(), h.actor(c), int64(id), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "product updated", nil)
}

// DeleteProduct is the confirmed branch of the delete modal; cancel never
// reaches the server.
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid product id")
	}
	if err := h.Dispatch.DeleteProduct(c.Context(), h.actor(c), int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "product deleted", nil)
}

// --- services ---

func (h *Handler) Services(c *fiber.Ctx) error {
	items, err := collection.Get(c.Context(), h.Cache, collection.Services, "",
		func(ctx context.Context) ([]models.Service, error) {
			return h.API.Services(ctx)
		})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(items, filter.Services(), filter.CategoryAll, c.Query("q"))
	return helpers.JSONSuccess(c, "services", filtered)
}

func (h *Handler) CreateService(c *fiber.Ctx) error {
	var in models.ServiceInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateService(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.CreateService(c.Context(), h.actor(c), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "service created", nil)
}

func (h *Handler) UpdateService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid service id")
	}
	var in models.ServiceInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateService(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.UpdateService(c.Context(), h.actor(c), int64(id), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "service updated", nil)
}

func (h *Handler) DeleteService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid service id")
	}
	if err := h.Dispatch.DeleteService(c.Context(), h.actor(c), int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "service deleted", nil)
}

// --- games ---

func (h *Handler) Games(c *fiber.Ctx) error {
	items, err := collection.Get(c.Context(), h.Cache, collection.Games, "",
		func(ctx context.Context) ([]models.Game, error) {
			return h.API.Games(ctx)
		})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(items, filter.Games(), filter.CategoryAll, c.Query("q"))
	return helpers.JSONSuccess(c, "games", filtered)
}

// NormalizeSlug is the live helper behind the slug input: the browser
// sends the raw text, gets back the normalized form.
func (h *Handler) NormalizeSlug(c *fiber.Ctx) error {
	var req struct {
		Slug string `json:"slug"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	return helpers.JSONSuccess(c, "slug", fiber.Map{"slug": forms.NormalizeSlug(req.Slug)})
}

func (h *Handler) CreateGame(c *fiber.Ctx) error {
	var in models.GameInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateGame(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.CreateGame(c.Context(), h.actor(c), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "game created", nil)
}

func (h *Handler) UpdateGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid game id")
	}
	var in models.GameInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if errs := forms.ValidateGame(in); len(errs) > 0 {
		return helpers.JSONValidation(c, errs)
	}
	if err := h.Dispatch.UpdateGame(c.Context(), h.actor(c), int64(id), in); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "game updated", nil)
}

func (h *Handler) DeleteGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid game id")
	}
	if err := h.Dispatch.DeleteGame(c.Context(), h.actor(c), int64(id)); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "game deleted", nil)
}
