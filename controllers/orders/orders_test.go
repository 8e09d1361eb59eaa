package orders

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
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
	"gamemart/models"
	"gamemart/upstream"
)

// marketStub is a stateful upstream double: confirming an order flips its
// status, so cache invalidation is observable through a refetch.
type marketStub struct {
	mu     sync.Mutex
	orders []models.Order
}

func (s *marketStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders/all", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"orders":      s.orders,
			"today_count": 2,
			"last_month":  120000.5,
		})
	})
	mux.HandleFunc("POST /orders/{id}/confirm", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.orders {
			if fmt.Sprint(s.orders[i].ID) == r.PathValue("id") {
				s.orders[i].PaymentStatus = "confirmed"
			}
		}
		io.WriteString(w, `{"success": true, "message": "order confirmed"}`)
	})
	return mux
}

func coinProduct() *models.Product {
	return &models.Product{
		ID:          5,
		ProductType: "coin",
		Name:        "1000 Coins",
		Data:        models.ProductBag{Amount: 1000},
	}
}

func accountProduct() *models.Product {
	return &models.Product{ID: 6, ProductType: "account", Name: "Epic Account"}
}

func sampleOrders() []models.Order {
	return []models.Order{
		{
			ID: 10, PaymentStatus: models.PaymentPending, Product: coinProduct(),
			Meta: map[string]any{"game_uid": "uid-777", "server_id": "2001"},
		},
		{ID: 11, PaymentStatus: models.PaymentPending, Product: coinProduct()},
		{ID: 12, PaymentStatus: "confirmed", Product: accountProduct()},
	}
}

func newTestApp(t *testing.T, stub *marketStub) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(stub.handler(t))
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
	app.Get("/api/orders", h.List)
	app.Post("/api/orders/:id/confirm", h.Confirm)
	app.Get("/api/orders/:id/meta", h.Meta)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	var out map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("GET %s: decode: %v", path, err)
	}
	return resp.StatusCode, out
}

func listOrders(t *testing.T, app *fiber.App, path string) []models.Order {
	t.Helper()
	code, out := get(t, app, path)
	if code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, code)
	}
	var orders []models.Order
	if err := json.Unmarshal(out["orders"], &orders); err != nil {
		t.Fatal(err)
	}
	return orders
}

func TestListCarriesStatsAndOrdersKey(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	code, out := get(t, app, "/api/orders")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if _, ok := out["orders"]; !ok {
		t.Fatal("orders key missing from envelope")
	}
	if string(out["today_count"]) != "2" || string(out["last_month"]) != "120000.5" {
		t.Fatalf("stats = %s / %s", out["today_count"], out["last_month"])
	}
}

func TestListFiltersByProductType(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	orders := listOrders(t, app, "/api/orders?filter=coin")
	if len(orders) != 2 {
		t.Fatalf("coin filter: got %d orders", len(orders))
	}
	for _, o := range orders {
		if !o.IsCoin() {
			t.Fatalf("non-coin order %d leaked through", o.ID)
		}
	}
}

func TestConfirmFlipsStatusAfterRefetch(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	// Warm the cache with the pending state first.
	orders := listOrders(t, app, "/api/orders")
	if !orders[0].IsPending() {
		t.Fatalf("fixture order 10 should start pending")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/10/confirm", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirm status = %d", resp.StatusCode)
	}

	// The listing must not serve the stale pending row.
	for _, o := range listOrders(t, app, "/api/orders") {
		if o.ID == 10 && o.IsPending() {
			t.Fatal("confirmed order still served as pending")
		}
	}
}

func TestMetaForCoinOrder(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	code, out := get(t, app, "/api/orders/10/meta")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var meta struct {
		GameUID  string `json:"game_uid"`
		ServerID string `json:"server_id"`
		Amount   int    `json:"amount"`
	}
	if err := json.Unmarshal(out["data"], &meta); err != nil {
		t.Fatal(err)
	}
	if meta.GameUID != "uid-777" || meta.ServerID != "2001" || meta.Amount != 1000 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestMetaFallsBackWhenBuyerOmittedFields(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	_, out := get(t, app, "/api/orders/11/meta")
	var meta struct {
		GameUID  string `json:"game_uid"`
		ServerID string `json:"server_id"`
	}
	if err := json.Unmarshal(out["data"], &meta); err != nil {
		t.Fatal(err)
	}
	if meta.GameUID != "N/A" || meta.ServerID != "N/A" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestMetaEmptyForNonCoinOrder(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})

	code, out := get(t, app, "/api/orders/12/meta")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if string(out["data"]) != "null" {
		t.Fatalf("data = %s", out["data"])
	}
}

func TestMetaUnknownOrderIs404(t *testing.T) {
	app := newTestApp(t, &marketStub{orders: sampleOrders()})
	code, _ := get(t, app, "/api/orders/999/meta")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
}
