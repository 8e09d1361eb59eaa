package middlewares

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"gamemart/helpers"
	"gamemart/models"
)

// CookieName carries the signed session id in the browser.
const CookieName = "gamemart_session"

// Locals keys set for downstream handlers.
const (
	LocalToken = "upstream_token"
	LocalActor = "actor"
)

// SignSession wraps a session id in a signed cookie value.
func SignSession(secret []byte, sid string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": expiresAt.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

func parseSID(secret []byte, cookie string) (string, error) {
	tok, err := jwt.Parse(cookie, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid session cookie")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("missing session id")
	}
	return sid, nil
}

// Session authenticates dashboard requests: signed cookie → session row →
// upstream token into locals. Anything short of a live admin session is a
// visible 401, never a silent pass-through.
func Session(db *gorm.DB, secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(CookieName)
		if cookie == "" {
			return helpers.JSONUnauthorized(c, "authentication required")
		}

		sid, err := parseSID(secret, cookie)
		if err != nil {
			return helpers.JSONUnauthorized(c, "invalid session")
		}

		var session models.Session
		if err := db.Where("sid = ?", sid).First(&session).Error; err != nil {
			return helpers.JSONUnauthorized(c, "session not found")
		}
		if session.Expired(time.Now()) {
			db.Delete(&session)
			return helpers.JSONUnauthorized(c, "session expired")
		}
		if !session.IsAdmin {
			return helpers.JSONStatus(c, fiber.StatusForbidden, "admin access required")
		}

		c.Locals(LocalToken, session.Token)
		c.Locals(LocalActor, session.Username)
		return c.Next()
	}
}

// Token returns the upstream bearer token attached by Session.
func Token(c *fiber.Ctx) string {
	tok, _ := c.Locals(LocalToken).(string)
	return tok
}

// ActorName returns the username attached by Session.
func ActorName(c *fiber.Ctx) string {
	name, _ := c.Locals(LocalActor).(string)
	return name
}
