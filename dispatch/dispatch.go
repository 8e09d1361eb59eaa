// Package dispatch performs the state-changing half of every table: one
// upstream mutation per action, a whole-collection cache invalidation on
// success, and an audit row. Rows are guarded individually, so confirming
// one order never blocks confirming another.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gamemart/collection"
	"gamemart/models"
	"gamemart/notify"
	"gamemart/upstream"
)

// ErrBusy rejects a second mutation on a row whose previous mutation has
// not resolved yet. Distinct rows proceed independently.
var ErrBusy = errors.New("dispatch: row mutation already in flight")

// Actor identifies the admin a mutation is audited under.
type Actor struct {
	Username string
	Token    string
}

type Dispatcher struct {
	api      *upstream.Client
	cache    *collection.Cache
	db       *gorm.DB
	notifier *notify.Notifier
	log      *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func New(api *upstream.Client, cache *collection.Cache, db *gorm.DB, notifier *notify.Notifier, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		api:      api,
		cache:    cache,
		db:       db,
		notifier: notifier,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

func rowKey(coll string, id int64) string {
	return fmt.Sprintf("%s/%d", coll, id)
}

func (d *Dispatcher) acquire(coll string, id int64) error {
	key := rowKey(coll, id)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[key]; busy {
		return ErrBusy
	}
	d.inflight[key] = struct{}{}
	return nil
}

func (d *Dispatcher) release(coll string, id int64) {
	d.mu.Lock()
	delete(d.inflight, rowKey(coll, id))
	d.mu.Unlock()
}

// mutate runs one guarded mutation: upstream call, then invalidation and
// audit only after the server accepted it. No optimistic local change ever
// happens, so a failure needs no rollback. also lists further collections
// embedding this entity; they are invalidated with the same broad brush.
func (d *Dispatcher) mutate(ctx context.Context, actor Actor, coll string, id int64, action string, payload any, call func(context.Context) error, also ...string) error {
	if id != 0 {
		if err := d.acquire(coll, id); err != nil {
			return err
		}
		defer d.release(coll, id)
	}

	if err := call(ctx); err != nil {
		d.log.WithFields(logrus.Fields{
			"action": action, "entity": coll, "id": id, "actor": actor.Username,
		}).WithError(err).Warn("mutation rejected")
		return err
	}

	d.cache.Invalidate(append([]string{coll}, also...)...)
	d.audit(actor, coll, id, action, payload)
	return nil
}

func (d *Dispatcher) audit(actor Actor, entity string, id int64, action string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("null")
	}
	rec := models.AdminAction{
		RefID:    uuid.NewString(),
		Actor:    actor.Username,
		Action:   action,
		Entity:   entity,
		EntityID: id,
		Payload:  datatypes.JSON(raw),
	}
	// The audit trail is best effort; a write failure must not undo an
	// already-accepted mutation.
	if err := d.db.Create(&rec).Error; err != nil {
		d.log.WithError(err).Error("audit write failed")
	}
}

// --- users ---

// SetBanned blocks or unblocks a user. reason accompanies a block and is
// cleared server-side on unblock.
func (d *Dispatcher) SetBanned(ctx context.Context, actor Actor, userID int64, banned bool, reason string) error {
	action := "unblock"
	if banned {
		action = "block"
	}
	patch := upstream.UserPatch{BanReason: &reason, IsBanned: &banned}
	return d.mutate(ctx, actor, collection.Users, userID, action, patch, func(ctx context.Context) error {
		return d.api.UpdateUser(ctx, actor.Token, userID, patch)
	})
}

// AdjustWallet sends the operator-entered amount, exactly as reviewed in
// the confirmation step.
func (d *Dispatcher) AdjustWallet(ctx context.Context, actor Actor, userID int64, amount decimal.Decimal, reason string) error {
	n := json.Number(amount.String())
	patch := upstream.UserPatch{WalletAmount: &n}
	payload := map[string]any{"wallet_amount": amount.String(), "reason": reason}
	return d.mutate(ctx, actor, collection.Users, userID, "wallet", payload, func(ctx context.Context) error {
		return d.api.UpdateUser(ctx, actor.Token, userID, patch)
	})
}

func (d *Dispatcher) SetOnline(ctx context.Context, actor Actor, userID int64, online bool) error {
	patch := upstream.UserPatch{IsOnline: &online}
	return d.mutate(ctx, actor, collection.Users, userID, "online", patch, func(ctx context.Context) error {
		return d.api.UpdateUser(ctx, actor.Token, userID, patch)
	})
}

// --- orders / top-ups ---

func (d *Dispatcher) ConfirmOrder(ctx context.Context, actor Actor, orderID int64) error {
	err := d.mutate(ctx, actor, collection.Orders, orderID, "confirm", nil, func(ctx context.Context) error {
		return d.api.ConfirmOrder(ctx, actor.Token, orderID)
	})
	if err == nil {
		d.notifier.OrderConfirmed(orderID, actor.Username)
	}
	return err
}

func (d *Dispatcher) ConfirmTopUp(ctx context.Context, actor Actor, topupID int64) error {
	err := d.mutate(ctx, actor, collection.TopUps, topupID, "confirm", nil, func(ctx context.Context) error {
		return d.api.ConfirmTopUp(ctx, actor.Token, topupID)
	})
	if err == nil {
		d.notifier.TopUpConfirmed(topupID, actor.Username)
	}
	return err
}

// --- reviews ---

func (d *Dispatcher) DeleteReview(ctx context.Context, actor Actor, reviewID int64) error {
	return d.mutate(ctx, actor, collection.Reviews, reviewID, "delete", nil, func(ctx context.Context) error {
		return d.api.DeleteReview(ctx, actor.Token, reviewID)
	})
}

// --- catalog ---

func (d *Dispatcher) CreateProduct(ctx context.Context, actor Actor, in models.ProductInput) error {
	return d.mutate(ctx, actor, collection.Products, 0, "create", in, func(ctx context.Context) error {
		return d.api.CreateProduct(ctx, actor.Token, in)
	}, collection.Orders)
}

func (d *Dispatcher) UpdateProduct(ctx context.Context, actor Actor, id int64, in models.ProductInput) error {
	return d.mutate(ctx, actor, collection.Products, id, "update", in, func(ctx context.Context) error {
		return d.api.UpdateProduct(ctx, actor.Token, id, in)
	}, collection.Orders)
}

func (d *Dispatcher) DeleteProduct(ctx context.Context, actor Actor, id int64) error {
	return d.mutate(ctx, actor, collection.Products, id, "delete", nil, func(ctx context.Context) error {
		return d.api.DeleteProduct(ctx, actor.Token, id)
	}, collection.Orders)
}

func (d *Dispatcher) CreateService(ctx context.Context, actor Actor, in models.ServiceInput) error {
	return d.mutate(ctx, actor, collection.Services, 0, "create", in, func(ctx context.Context) error {
		return d.api.CreateService(ctx, actor.Token, in)
	}, collection.Products)
}

func (d *Dispatcher) UpdateService(ctx context.Context, actor Actor, id int64, in models.ServiceInput) error {
	return d.mutate(ctx, actor, collection.Services, id, "update", in, func(ctx context.Context) error {
		return d.api.UpdateService(ctx, actor.Token, id, in)
	}, collection.Products)
}

func (d *Dispatcher) DeleteService(ctx context.Context, actor Actor, id int64) error {
	return d.mutate(ctx, actor, collection.Services, id, "delete", nil, func(ctx context.Context) error {
		return d.api.DeleteService(ctx, actor.Token, id)
	}, collection.Products)
}

func (d *Dispatcher) CreateGame(ctx context.Context, actor Actor, in models.GameInput) error {
	return d.mutate(ctx, actor, collection.Games, 0, "create", in, func(ctx context.Context) error {
		return d.api.CreateGame(ctx, actor.Token, in)
	}, collection.Products)
}

func (d *Dispatcher) UpdateGame(ctx context.Context, actor Actor, id int64, in models.GameInput) error {
	return d.mutate(ctx, actor, collection.Games, id, "update", in, func(ctx context.Context) error {
		return d.api.UpdateGame(ctx, actor.Token, id, in)
	}, collection.Products)
}

func (d *Dispatcher) DeleteGame(ctx context.Context, actor Actor, id int64) error {
	return d.mutate(ctx, actor, collection.Games, id, "delete", nil, func(ctx context.Context) error {
		return d.api.DeleteGame(ctx, actor.Token, id)
	}, collection.Products)
}
