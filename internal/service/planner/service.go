// Package planner owns the event side of the system: listing and loading
// persisted events, saving drafts, and stepping a client's booking ledger
// through the reducer.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Ximianer/lightwave-erp/internal/booking"
	"github.com/Ximianer/lightwave-erp/internal/domain"
	"github.com/Ximianer/lightwave-erp/internal/metrics"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	"github.com/Ximianer/lightwave-erp/internal/repository"
	fsrepo "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
)

type Config struct {
	// SnapshotTTL bounds how stale a cached collection snapshot may get when
	// the watcher is down; pushes normally overwrite it much sooner.
	SnapshotTTL time.Duration
}

type Service struct {
	store  *fsrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.CollectionsPubSub
	cfg    Config
}

func New(
	store *fsrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.CollectionsPubSub,
	cfg Config,
) *Service {
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 60 * time.Second
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		cfg:    cfg,
	}
}

// ListEvents returns all events sorted by start time (unset starts first,
// like the timeline renders them).
func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const op = "service.planner.ListEvents"

	events, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeySnapshot(fsrepo.ColEvents),
		s.cfg.SnapshotTTL,
		func(ctx context.Context) ([]domain.Event, error) {
			return s.store.Events().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	sorted := append([]domain.Event{}, events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EventStart < sorted[j].EventStart
	})

	return sorted, nil
}

// GetEvent retrieves one event by identity.
//
// Returns:
//   - error: planner.ErrEventNotFound if no such document exists.
func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	const op = "service.planner.GetEvent"

	ev, err := s.store.Events().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return ev, nil
}

// SaveEvent persists a draft: a draft without identity creates a new
// document, one with identity updates it in place. The total price is
// recomputed from the ledger inside Build; whatever the client claims is
// discarded. The local draft is considered spent after the write; the next
// pushed snapshot carries the committed value.
//
// Returns:
//   - string: the event identity (newly assigned or preserved).
//   - error: planner.ErrEmptyTitle when the draft fails validation.
func (s *Service) SaveEvent(ctx context.Context, d *booking.Draft) (string, error) {
	const op = "service.planner.SaveEvent"

	ev, err := d.Build()
	if err != nil {
		if errors.Is(err, booking.ErrEmptyTitle) {
			return "", fmt.Errorf("%s:%w", op, ErrEmptyTitle)
		}

		return "", fmt.Errorf("%s:%w", op, err)
	}

	id := ev.ID
	if id == "" {
		id, err = s.store.Events().Create(ctx, ev)
	} else {
		err = s.store.Events().Update(ctx, id, ev)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}

		return "", fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx)

	return id, nil
}

// DeleteEvent retires the event's identity.
//
// Returns:
//   - error: planner.ErrEventNotFound if no such document exists.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	const op = "service.planner.DeleteEvent"

	if _, err := s.store.Events().Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Events().Delete(ctx, id); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx)

	return nil
}

// LedgerAction is one unresolved mutation from a planning client.
type LedgerAction struct {
	Type     booking.ActionType
	ItemID   string
	Name     string
	BundleID string
}

// LedgerResult is the reducer output: the next ledger state, its derived
// total, and the at-capacity flag per booked item name so the client can
// render "at max" without re-deriving stock.
type LedgerResult struct {
	Lines []domain.BookedItem `json:"lines"`
	Total float64             `json:"total"`
	AtMax map[string]bool     `json:"atMax"`
}

// ApplyLedger resolves the action against current inventory and bundles and
// runs one reducer step. An increment at the stock ceiling is not an error:
// the ledger comes back unchanged with its AtMax flag set.
func (s *Service) ApplyLedger(
	ctx context.Context,
	lines []domain.BookedItem,
	action LedgerAction,
) (*LedgerResult, error) {
	const op = "service.planner.ApplyLedger"

	items, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeySnapshot(fsrepo.ColInventory),
		s.cfg.SnapshotTTL,
		func(ctx context.Context) ([]domain.InventoryItem, error) {
			return s.store.Inventory().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	bundles, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeySnapshot(fsrepo.ColBundles),
		s.cfg.SnapshotTTL,
		func(ctx context.Context) ([]domain.Bundle, error) {
			return s.store.Bundles().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	resolved, err := resolveAction(items, bundles, action)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	next := booking.Apply(booking.Ledger(lines), resolved)
	metrics.LedgerActionsTotal.WithLabelValues(string(resolved.Type)).Inc()

	return &LedgerResult{
		Lines: next,
		Total: booking.Total(next),
		AtMax: atMaxFlags(next, items),
	}, nil
}

// resolveAction turns store identities into the records the reducer needs.
func resolveAction(
	items []domain.InventoryItem,
	bundles []domain.Bundle,
	action LedgerAction,
) (booking.Action, error) {
	switch action.Type {
	case booking.ActionIncrement:
		for i := range items {
			if items[i].ID == action.ItemID {
				return booking.Action{Type: booking.ActionIncrement, Item: &items[i]}, nil
			}
		}
		return booking.Action{}, ErrItemNotFound

	case booking.ActionDecrement:
		if action.Name == "" {
			return booking.Action{}, ErrUnknownAction
		}
		return booking.Action{Type: booking.ActionDecrement, Name: action.Name}, nil

	case booking.ActionMergeBundle:
		for i := range bundles {
			if bundles[i].ID == action.BundleID {
				return booking.Action{Type: booking.ActionMergeBundle, Bundle: &bundles[i]}, nil
			}
		}
		return booking.Action{}, ErrBundleNotFound
	}

	return booking.Action{}, ErrUnknownAction
}

func atMaxFlags(l booking.Ledger, items []domain.InventoryItem) map[string]bool {
	flags := make(map[string]bool, len(l))
	byName := make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}
	for _, line := range l {
		if item, ok := byName[line.Name]; ok {
			flags[line.Name] = booking.AtCapacity(l, item)
		}
	}
	return flags
}

func (s *Service) announce(ctx context.Context) {
	_ = s.cache.InvalidateCollection(ctx, fsrepo.ColEvents)
	_ = s.pubsub.PublishChanged(ctx, fsrepo.ColEvents)
}
