// Package watch runs the live side of the document store: one listener per
// collection that turns Firestore pushes into cached snapshots and
// collection-changed announcements.
package watch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ximianer/lightwave-erp/internal/domain"
	"github.com/Ximianer/lightwave-erp/internal/metrics"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	fsrepo "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
)

const retryDelay = 5 * time.Second

type Watcher struct {
	store  *fsrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.CollectionsPubSub
	logger *slog.Logger
}

func New(
	store *fsrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.CollectionsPubSub,
	logger *slog.Logger,
) *Watcher {
	return &Watcher{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		logger: logger,
	}
}

// Run blocks until ctx is canceled. Each collection gets its own listener
// loop; the collections update independently and deliberately carry no
// ordering guarantees relative to each other. A failed stream is logged and
// reopened after a delay; a reopened listener always starts with a full
// snapshot, so nothing is missed.
func (w *Watcher) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.loop(gCtx, fsrepo.ColEvents, func(ctx context.Context) error {
			return w.store.Events().Watch(ctx, func(events []domain.Event) {
				w.publish(ctx, fsrepo.ColEvents, events)
			})
		})
	})

	g.Go(func() error {
		return w.loop(gCtx, fsrepo.ColInventory, func(ctx context.Context) error {
			return w.store.Inventory().Watch(ctx, func(items []domain.InventoryItem) {
				w.publish(ctx, fsrepo.ColInventory, items)
			})
		})
	})

	g.Go(func() error {
		return w.loop(gCtx, fsrepo.ColUsers, func(ctx context.Context) error {
			return w.store.Users().Watch(ctx, func(users []domain.User) {
				w.publish(ctx, fsrepo.ColUsers, users)
			})
		})
	})

	g.Go(func() error {
		return w.loop(gCtx, fsrepo.ColBundles, func(ctx context.Context) error {
			return w.store.Bundles().Watch(ctx, func(bundles []domain.Bundle) {
				w.publish(ctx, fsrepo.ColBundles, bundles)
			})
		})
	})

	return g.Wait()
}

func (w *Watcher) loop(ctx context.Context, collection string, watch func(ctx context.Context) error) error {
	for {
		err := watch(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.logger.Error("collection listener failed, reopening",
			"collection", collection,
			"error", err,
			"retry_in", retryDelay,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

// publish caches the snapshot without expiry (pushes overwrite it) and
// announces the change. Failures only cost freshness, never correctness:
// readers fall back to loading from the store.
func (w *Watcher) publish(ctx context.Context, collection string, snapshot any) {
	metrics.SnapshotPushesTotal.WithLabelValues(collection).Inc()

	if err := redisrepo.SetJSON(ctx, w.cache, redisx.KeySnapshot(collection), snapshot, 0); err != nil {
		w.logger.Error("failed to cache snapshot", "collection", collection, "error", err)
	}

	if err := w.pubsub.PublishChanged(ctx, collection); err != nil {
		w.logger.Error("failed to announce snapshot", "collection", collection, "error", err)
	}
}
