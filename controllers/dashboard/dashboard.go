// Package dashboard feeds the landing page: headline counters, chart
// series and the monthly revenue target, plus the local audit trail.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gamemart/helpers"
	"gamemart/middlewares"
	"gamemart/models"
	"gamemart/upstream"
)

type Handler struct {
	API *upstream.Client
	DB  *gorm.DB
}

func (h *Handler) MonthlySales(c *fiber.Ctx) error {
	sales, err := h.API.MonthlySales(c.Context(), middlewares.Token(c))
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "monthly sales", fiber.Map{"sales": sales})
}

func (h *Handler) MonthlyTarget(c *fiber.Ctx) error {
	target, err := h.API.MonthlyTarget(c.Context(), middlewares.Token(c))
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "monthly target", target)
}

func (h *Handler) StatsMonthly(c *fiber.Ctx) error {
	stats, err := h.API.StatsMonthly(c.Context(), middlewares.Token(c))
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "monthly stats", stats)
}

// Audit pages through the local record of admin actions, newest first.
func (h *Handler) Audit(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var actions []models.AdminAction
	if err := h.DB.Order("id DESC").Limit(limit).Offset(offset).Find(&actions).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "audit query failed")
	}
	return helpers.JSONSuccess(c, "audit trail", actions)
}
