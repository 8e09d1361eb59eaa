// Package jobs runs the background maintenance the dashboard needs:
// sweeping expired sessions, keeping the hot collections warm, and
// watching for new pending top-ups to announce.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gamemart/collection"
	"gamemart/config"
	"gamemart/models"
	"gamemart/notify"
	"gamemart/upstream"
)

type Runner struct {
	cfg      *config.Config
	db       *gorm.DB
	cache    *collection.Cache
	api      *upstream.Client
	notifier *notify.Notifier
	log      *logrus.Logger

	mu   sync.Mutex
	seen map[int64]struct{} // pending top-ups already announced
}

func NewRunner(cfg *config.Config, db *gorm.DB, cache *collection.Cache, api *upstream.Client, notifier *notify.Notifier, log *logrus.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		db:       db,
		cache:    cache,
		api:      api,
		notifier: notifier,
		log:      log,
		seen:     make(map[int64]struct{}),
	}
}

// Start registers and launches the cron schedule. Jobs that need an
// upstream token only run when a service token is configured.
func (r *Runner) Start() (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc("@every 10m", r.SweepSessions); err != nil {
		return nil, err
	}
	if r.cfg.ServiceToken != "" {
		if _, err := c.AddFunc(r.cfg.RefreshSpec, r.WarmCollections); err != nil {
			return nil, err
		}
		if r.notifier != nil {
			if _, err := c.AddFunc("@every 1m", r.ScanPendingTopUps); err != nil {
				return nil, err
			}
		}
	}

	c.Start()
	return c, nil
}

// SweepSessions deletes sessions past their expiry.
func (r *Runner) SweepSessions() {
	res := r.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil {
		r.log.WithError(res.Error).Warn("session sweep failed")
		return
	}
	if res.RowsAffected > 0 {
		r.log.WithField("count", res.RowsAffected).Info("expired sessions removed")
	}
}

// WarmCollections refetches the order and top-up queues so the first
// dashboard view after a quiet period is served warm.
func (r *Runner) WarmCollections() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.UpstreamTimeout)
	defer cancel()

	r.cache.Invalidate(collection.Orders, collection.TopUps)
	if _, err := collection.Get(ctx, r.cache, collection.Orders, "service_id=0&game_slug=",
		func(ctx context.Context) (*upstream.OrdersResult, error) {
			return r.api.Orders(ctx, r.cfg.ServiceToken, upstream.OrdersQuery{})
		}); err != nil {
		r.log.WithError(err).Warn("order refresh failed")
	}
	if _, err := collection.Get(ctx, r.cache, collection.TopUps, "",
		func(ctx context.Context) ([]models.TopUp, error) {
			return r.api.TopUpOrders(ctx, r.cfg.ServiceToken)
		}); err != nil {
		r.log.WithError(err).Warn("top-up refresh failed")
	}
}

// ScanPendingTopUps announces funding requests not seen before. Confirmed
// ones fall out of the seen set so the map cannot grow unbounded.
func (r *Runner) ScanPendingTopUps() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.UpstreamTimeout)
	defer cancel()

	topups, err := r.api.TopUpOrders(ctx, r.cfg.ServiceToken)
	if err != nil {
		r.log.WithError(err).Warn("top-up scan failed")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[int64]struct{}, len(topups))
	for _, t := range topups {
		if t.Status != models.TopUpPending {
			continue
		}
		pending[t.ID] = struct{}{}
		if _, ok := r.seen[t.ID]; !ok {
			r.notifier.PendingTopUp(t)
		}
	}
	r.seen = pending
}
