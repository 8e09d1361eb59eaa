package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gamemart/helpers"
	"gamemart/middlewares"
	"gamemart/models"
	"gamemart/upstream"
)

type Handler struct {
	API        *upstream.Client
	DB         *gorm.DB
	Secret     []byte
	SessionTTL time.Duration
	Log        *logrus.Logger
}

type loginRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Login forwards credentials upstream, refuses non-admin accounts, and
// binds the returned bearer token to a server-side session. The browser
// only ever holds the signed session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "invalid JSON body")
	}
	if req.PhoneNumber == "" || req.Password == "" {
		return helpers.JSONError(c, "phone number and password are required")
	}

	resp, err := h.API.Login(c.Context(), upstream.LoginRequest{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	if resp.Token == "" || resp.User == nil {
		return helpers.JSONError(c, "login rejected")
	}
	if !resp.User.IsAdmin {
		h.Log.WithField("username", resp.User.Username).Warn("non-admin login attempt")
		return helpers.JSONStatus(c, fiber.StatusForbidden, "admin access required")
	}

	session := models.Session{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		Username:  resp.User.Username,
		IsAdmin:   true,
		ExpiresAt: time.Now().Add(h.SessionTTL),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		h.Log.WithError(err).Error("session create failed")
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "could not create session")
	}

	cookie, err := middlewares.SignSession(h.Secret, session.SID, session.ExpiresAt)
	if err != nil {
		h.Log.WithError(err).Error("session sign failed")
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "could not create session")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieName,
		Value:    cookie,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return helpers.JSONSuccess(c, "logged in", fiber.Map{
		"username":   resp.User.Username,
		"is_admin":   resp.User.IsAdmin,
		"expires_at": session.ExpiresAt,
	})
}

// Logout revokes upstream first, then drops the local session either way.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token := middlewares.Token(c)
	if err := h.API.Logout(c.Context(), token); err != nil {
		h.Log.WithError(err).Warn("upstream logout failed")
	}
	h.DB.Where("token = ?", token).Delete(&models.Session{})
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helpers.JSONSuccess(c, "logged out", nil)
}

// AdminStatuses proxies the public admin presence list.
func (h *Handler) AdminStatuses(c *fiber.Ctx) error {
	statuses, err := h.API.AdminStatuses(c.Context())
	if err != nil {
		return helpers.JSONFromError(c, err)
	}
	return helpers.JSONSuccess(c, "admin status", statuses)
}
