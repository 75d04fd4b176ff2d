package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

type ItemRepo struct {
	store *Store
}

func (r *ItemRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	const op = "repository.firestore.inventory.List"

	it := r.store.col(ColInventory).Documents(ctx)
	defer it.Stop()

	items := []domain.InventoryItem{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(op, err)
		}
		items = append(items, decodeItem(doc.Ref.ID, doc.Data()))
	}

	return items, nil
}

func (r *ItemRepo) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	const op = "repository.firestore.inventory.Get"

	doc, err := r.store.col(ColInventory).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	item := decodeItem(doc.Ref.ID, doc.Data())
	return &item, nil
}

func (r *ItemRepo) Create(ctx context.Context, item domain.InventoryItem) (string, error) {
	const op = "repository.firestore.inventory.Create"

	ref, _, err := r.store.col(ColInventory).Add(ctx, encodeItem(item))
	if err != nil {
		return "", wrapErr(op, err)
	}

	return ref.ID, nil
}

func (r *ItemRepo) Update(ctx context.Context, id string, item domain.InventoryItem) error {
	const op = "repository.firestore.inventory.Update"

	_, err := r.store.col(ColInventory).Doc(id).Set(ctx, encodeItem(item), firestore.MergeAll)
	return wrapErr(op, err)
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.firestore.inventory.Delete"

	_, err := r.store.col(ColInventory).Doc(id).Delete(ctx)
	return wrapErr(op, err)
}

// Watch delivers a full replacement snapshot of the inventory collection on
// every change until ctx is canceled.
func (r *ItemRepo) Watch(ctx context.Context, fn func([]domain.InventoryItem)) error {
	const op = "repository.firestore.inventory.Watch"

	snaps := r.store.col(ColInventory).Snapshots(ctx)
	defer snaps.Stop()

	for {
		qs, err := snaps.Next()
		if err != nil {
			return wrapErr(op, err)
		}

		docs, err := qs.Documents.GetAll()
		if err != nil {
			return wrapErr(op, err)
		}

		items := make([]domain.InventoryItem, 0, len(docs))
		for _, doc := range docs {
			items = append(items, decodeItem(doc.Ref.ID, doc.Data()))
		}

		fn(items)
	}
}
