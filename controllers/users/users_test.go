package users

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gamemart/collection"
	"gamemart/database"
	"gamemart/dispatch"
	"gamemart/middlewares"
	"gamemart/upstream"
)

const usersPayload = `{
	"success": true,
	"message": "users",
	"data": [
		{"id": 1, "username": "johnny", "phone_number": "0912345678", "wallet_amount": "1500.50"},
		{"id": 12, "username": "alice", "phone_number": "0987654321", "wallet_amount": "80", "is_admin": true},
		{"id": 21, "username": "Johnathan", "phone_number": "0955555555", "wallet_amount": "100"}
	],
	"today_count": 4,
	"yesterday_count": 9
}`

// newTestApp wires the handler exactly as routes.Setup does, with the
// session middleware swapped for a stub that plants a fixed admin actor.
func newTestApp(t *testing.T, mux http.Handler) (*fiber.App, *gorm.DB) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	api := upstream.New(srv.URL, 5*time.Second, log)
	cache := collection.NewCache(time.Minute)
	h := &Handler{API: api, Cache: cache, Dispatch: dispatch.New(api, cache, db, nil, log)}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middlewares.LocalToken, "tok")
		c.Locals(middlewares.LocalActor, "root")
		return c.Next()
	})
	app.Get("/api/users", h.List)
	app.Get("/api/wallet/users", h.WalletUsers)
	app.Put("/api/users/:id/block", h.Block)
	app.Put("/api/users/:id/online", h.SetOnline)
	app.Post("/api/users/:id/wallet/preview", h.WalletPreview)
	app.Post("/api/users/:id/wallet", h.WalletCommit)
	return app, db
}

func stubUpstream(t *testing.T, onUpdate func(id string, body map[string]json.RawMessage)) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, usersPayload)
	})
	mux.HandleFunc("PUT /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		if onUpdate != nil {
			onUpdate(r.PathValue("id"), body)
		}
		io.WriteString(w, `{"success": true}`)
	})
	return mux
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestListSearchNarrowsUsers(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, nil))

	code, out := doJSON(t, app, http.MethodGet, "/api/users?q=john", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var users []struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(out["data"], &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 || users[0].Username != "johnny" || users[1].Username != "Johnathan" {
		t.Fatalf("users = %+v", users)
	}
	if string(out["today_count"]) != "4" || string(out["yesterday_count"]) != "9" {
		t.Fatalf("counters = %s / %s", out["today_count"], out["yesterday_count"])
	}
}

func TestWalletUsersHideAdmins(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, nil))

	_, out := doJSON(t, app, http.MethodGet, "/api/wallet/users", "")
	var users []struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := json.Unmarshal(out["data"], &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 non-admins, got %d", len(users))
	}
	for _, u := range users {
		if u.IsAdmin {
			t.Fatal("admin in wallet picker")
		}
	}
}

func TestBlockRequiresReason(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, func(id string, body map[string]json.RawMessage) {
		t.Errorf("reasonless ban reached upstream: %v", body)
	}))

	code, out := doJSON(t, app, http.MethodPut, "/api/users/1/block", `{"is_banned": true}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", code)
	}
	var errs map[string]string
	if err := json.Unmarshal(out["errors"], &errs); err != nil {
		t.Fatal(err)
	}
	if errs["ban_reason"] == "" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestBlockForwardsPatch(t *testing.T) {
	var gotID string
	var gotBody map[string]json.RawMessage
	app, db := newTestApp(t, stubUpstream(t, func(id string, body map[string]json.RawMessage) {
		gotID, gotBody = id, body
	}))

	code, _ := doJSON(t, app, http.MethodPut, "/api/users/21/block", `{"is_banned": true, "ban_reason": "fraud"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if gotID != "21" {
		t.Fatalf("upstream id = %q", gotID)
	}
	if string(gotBody["is_banned"]) != "true" || string(gotBody["ban_reason"]) != `"fraud"` {
		t.Fatalf("patch = %v", gotBody)
	}

	var count int64
	db.Table("admin_actions").Where("action = ?", "block").Count(&count)
	if count != 1 {
		t.Fatalf("audit rows = %d", count)
	}
}

func TestWalletPreviewComputesBalanceWithoutUpstreamWrite(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, func(id string, body map[string]json.RawMessage) {
		t.Errorf("preview must not write upstream: %v", body)
	}))

	code, out := doJSON(t, app, http.MethodPost, "/api/users/1/wallet/preview",
		`{"type": "add", "amount": "250.25", "reason": "promo credit"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var preview struct {
		NewBalance string `json:"new_balance"`
		Current    string `json:"current_balance"`
	}
	if err := json.Unmarshal(out["data"], &preview); err != nil {
		t.Fatal(err)
	}
	if preview.Current != "1500.5" || preview.NewBalance != "1750.75" {
		t.Fatalf("preview = %+v", preview)
	}
}

func TestWalletCommitSendsEnteredAmount(t *testing.T) {
	var gotBody map[string]json.RawMessage
	app, _ := newTestApp(t, stubUpstream(t, func(id string, body map[string]json.RawMessage) {
		gotBody = body
	}))

	code, out := doJSON(t, app, http.MethodPost, "/api/users/21/wallet",
		`{"type": "subtract", "amount": "40", "reason": "chargeback"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", code, out)
	}
	// The wire carries what the operator typed, not the computed balance.
	if string(gotBody["wallet_amount"]) != "40" {
		t.Fatalf("wallet_amount = %s", gotBody["wallet_amount"])
	}
	var data struct {
		NewBalance string `json:"new_balance"`
	}
	if err := json.Unmarshal(out["data"], &data); err != nil {
		t.Fatal(err)
	}
	if data.NewBalance != "60" {
		t.Fatalf("new_balance = %q", data.NewBalance)
	}
}

func TestWalletCommitRejectsOverdraw(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, func(id string, body map[string]json.RawMessage) {
		t.Errorf("overdraw reached upstream: %v", body)
	}))

	code, out := doJSON(t, app, http.MethodPost, "/api/users/21/wallet",
		`{"type": "subtract", "amount": "500", "reason": "oops"}`)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", code)
	}
	var errs map[string]string
	if err := json.Unmarshal(out["errors"], &errs); err != nil {
		t.Fatal(err)
	}
	if errs["amount"] == "" {
		t.Fatalf("errors = %v", errs)
	}
}

func TestWalletUnknownUserRejected(t *testing.T) {
	app, _ := newTestApp(t, stubUpstream(t, nil))
	code, _ := doJSON(t, app, http.MethodPost, "/api/users/999/wallet/preview",
		`{"type": "add", "amount": "10", "reason": "x"}`)
	if code == http.StatusOK {
		t.Fatal("preview for unknown user succeeded")
	}
}
