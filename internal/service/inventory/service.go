// Package inventory manages the rentable hardware pool and the bundle
// catalog built on top of it.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ximianer/lightwave-erp/internal/domain"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	"github.com/Ximianer/lightwave-erp/internal/repository"
	fsrepo "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
)

type Config struct {
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

func (s *Service) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	const op = "service.inventory.ListItems"

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

	return items, nil
}

// CreateItem adds a hardware item. The name is required and uppercased by
// convention; a negative price or stock is stored as 0 rather than refused,
// matching the defaulting rules the documents already follow.
//
// Returns:
//   - string: the new item identity.
//   - error: inventory.ErrEmptyItemName when the name is blank.
func (s *Service) CreateItem(ctx context.Context, name string, rentPrice float64, stock int) (string, error) {
	const op = "service.inventory.CreateItem"

	item, err := normalizeItem(name, rentPrice, stock)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	id, err := s.store.Inventory().Create(ctx, item)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx, fsrepo.ColInventory)

	return id, nil
}

// UpdateItem rewrites an item with the same normalization as CreateItem.
//
// Returns:
//   - error: inventory.ErrItemNotFound if the identity is unknown.
func (s *Service) UpdateItem(ctx context.Context, id, name string, rentPrice float64, stock int) error {
	const op = "service.inventory.UpdateItem"

	item, err := normalizeItem(name, rentPrice, stock)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if _, err := s.store.Inventory().Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrItemNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Inventory().Update(ctx, id, item); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx, fsrepo.ColInventory)

	return nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	const op = "service.inventory.DeleteItem"

	if _, err := s.store.Inventory().Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrItemNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Inventory().Delete(ctx, id); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx, fsrepo.ColInventory)

	return nil
}

func (s *Service) ListBundles(ctx context.Context) ([]domain.Bundle, error) {
	const op = "service.inventory.ListBundles"

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

	return bundles, nil
}

// Selection is one (item, quantity) pair picked while authoring a bundle.
type Selection struct {
	ItemID   string
	Quantity int
}

// CreateBundle authors a bundle from the current inventory. Prices are
// snapshotted from each item's rentPrice at this moment and never re-read;
// quantities below 1 clamp to 1.
//
// Returns:
//   - string: the new bundle identity.
//   - error: inventory.ErrEmptyBundleName / ErrEmptySelection on refusal,
//     inventory.ErrItemNotFound when a selected item does not exist.
func (s *Service) CreateBundle(ctx context.Context, name string, selection []Selection) (string, error) {
	const op = "service.inventory.CreateBundle"

	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%s:%w", op, ErrEmptyBundleName)
	}
	if len(selection) == 0 {
		return "", fmt.Errorf("%s:%w", op, ErrEmptySelection)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	lines, err := snapshotLines(items, selection)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	id, err := s.store.Bundles().Create(ctx, domain.Bundle{Name: name, Items: lines})
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx, fsrepo.ColBundles)

	return id, nil
}

func (s *Service) DeleteBundle(ctx context.Context, id string) error {
	const op = "service.inventory.DeleteBundle"

	if _, err := s.store.Bundles().Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrBundleNotFound)
		}

		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.store.Bundles().Delete(ctx, id); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx, fsrepo.ColBundles)

	return nil
}

func normalizeItem(name string, rentPrice float64, stock int) (domain.InventoryItem, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return domain.InventoryItem{}, ErrEmptyItemName
	}
	if rentPrice < 0 {
		rentPrice = 0
	}
	if stock < 0 {
		stock = 0
	}

	return domain.InventoryItem{
		Name:      name,
		RentPrice: rentPrice,
		Stock:     stock,
	}, nil
}

// snapshotLines resolves a selection against the inventory, clamping
// quantities and freezing prices.
func snapshotLines(items []domain.InventoryItem, selection []Selection) ([]domain.BookedItem, error) {
	byID := make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	lines := make([]domain.BookedItem, 0, len(selection))
	for _, sel := range selection {
		item, ok := byID[sel.ItemID]
		if !ok {
			return nil, ErrItemNotFound
		}
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, domain.BookedItem{
			Name:     item.Name,
			Quantity: qty,
			Price:    item.RentPrice,
		})
	}

	return lines, nil
}

func (s *Service) announce(ctx context.Context, collection string) {
	_ = s.cache.InvalidateCollection(ctx, collection)
	_ = s.pubsub.PublishChanged(ctx, collection)
}
