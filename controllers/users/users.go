package users

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"gamemart/collection"
	"gamemart/dispatch"
	"gamemart/filter"
	"gamemart/helpers"
	"gamemart/middlewares"
	"gamemart/upstream"
	"gamemart/wallet"
)

type Handler struct {
	API      *upstream.Client
	Cache    *collection.Cache
	Dispatch *dispatch.Dispatcher
}

func (h *Handler) load(c *fiber.Ctx) (*upstream.UsersResult, error) {
	token := middlewares.Token(c)
	return collection.Get(c.Context(), h.Cache, collection.Users, "",
		func(ctx context.Context) (*upstream.UsersResult, error) {
			return h.API.Users(ctx, token)
		})
}

// List serves the user table, narrowed by the q search parameter.
func (h *Handler) List(c *fiber.Ctx) error {
	res, err := h.load(c)
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(res.Users, filter.Users(), filter.CategoryAll, c.Query("q"))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"message":         "users",
		"data":            filtered,
		"today_count":     res.TodayCount,
		"yesterday_count": res.YesterdayCount,
	})
}

// WalletUsers serves the wallet screen's user picker: admins excluded.
func (h *Handler) WalletUsers(c *fiber.Ctx) error {
	res, err := h.load(c)
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	filtered := filter.Apply(res.Users, filter.WalletUsers(), filter.CategoryAll, c.Query("q"))
	return helpers.JSONSuccess(c, "wallet users", filtered)
}

type blockRequest struct {
	Banned bool   `json:"is_banned"`
	Reason string `json:"ban_reason"`
}

// Block bans or unbans one user. A ban needs a reason; an unban clears it.
func (h *Handler) Block(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid user id")
	}
	var req blockRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if req.Banned && req.Reason == "" {
		return helpers.JSONValidation(c, map[string]string{"ban_reason": "Ban reason is required"})
	}

	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.SetBanned(c.Context(), actor, int64(id), req.Banned, req.Reason); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "user updated", nil)
}

type onlineRequest struct {
	IsOnline bool `json:"is_online"`
}

// SetOnline toggles the admin presence flag shown on the storefront.
func (h *Handler) SetOnline(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid user id")
	}
	var req onlineRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.SetOnline(c.Context(), actor, int64(id), req.IsOnline); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "status updated", nil)
}

type walletRequest struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
	Reason string `json:"reason"`
}

// runWorkflow walks the adjustment flow up to the confirmation preview for
// the addressed user, reading the live balance from the cached collection.
func (h *Handler) runWorkflow(c *fiber.Ctx, id int64, req walletRequest) (*wallet.Workflow, wallet.Preview, error) {
	res, err := h.load(c)
	if err != nil {
		return nil, wallet.Preview{}, err
	}
	var balance string
	found := false
	for _, u := range res.Users {
		if u.ID == id {
			balance, found = u.WalletAmount, true
			break
		}
	}
	if !found {
		return nil, wallet.Preview{}, &upstream.APIError{Status: fiber.StatusNotFound, Message: "user not found"}
	}

	w := wallet.New()
	if err := w.Begin(id, balance); err != nil {
		return nil, wallet.Preview{}, err
	}
	preview, err := w.Enter(wallet.Op(req.Type), req.Amount, req.Reason)
	if err != nil {
		return nil, wallet.Preview{}, err
	}
	return w, preview, nil
}

// WalletPreview validates the entry step and returns the computed new
// balance for the operator to review. Nothing is sent upstream.
func (h *Handler) WalletPreview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid user id")
	}
	var req walletRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	_, preview, err := h.runWorkflow(c, int64(id), req)
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "wallet preview", preview)
}

// WalletCommit re-validates, confirms and dispatches the adjustment. The
// workflow resets to idle on either outcome.
func (h *Handler) WalletCommit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "invalid user id")
	}
	var req walletRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	w, _, err := h.runWorkflow(c, int64(id), req)
	if err != nil {
		return helpers.JSONFromError(c, err)
	}

	preview, err := w.Confirm()
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	defer w.Resolve()

	actor := dispatch.Actor{Username: middlewares.ActorName(c), Token: middlewares.Token(c)}
	if err := h.Dispatch.AdjustWallet(c.Context(), actor, int64(id), preview.Amount, preview.Reason); err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "wallet updated", fiber.Map{
		"new_balance": preview.NewBalance,
	})
}
