package firestore

import (
	"context"

	"google.golang.org/api/iterator"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

type BundleRepo struct {
	store *Store
}

func (r *BundleRepo) List(ctx context.Context) ([]domain.Bundle, error) {
	const op = "repository.firestore.bundles.List"

	it := r.store.col(ColBundles).Documents(ctx)
	defer it.Stop()

	bundles := []domain.Bundle{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(op, err)
		}
		bundles = append(bundles, decodeBundle(doc.Ref.ID, doc.Data()))
	}

	return bundles, nil
}

func (r *BundleRepo) Get(ctx context.Context, id string) (*domain.Bundle, error) {
	const op = "repository.firestore.bundles.Get"

	doc, err := r.store.col(ColBundles).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	b := decodeBundle(doc.Ref.ID, doc.Data())
	return &b, nil
}

func (r *BundleRepo) Create(ctx context.Context, b domain.Bundle) (string, error) {
	const op = "repository.firestore.bundles.Create"

	ref, _, err := r.store.col(ColBundles).Add(ctx, encodeBundle(b))
	if err != nil {
		return "", wrapErr(op, err)
	}

	return ref.ID, nil
}

func (r *BundleRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.firestore.bundles.Delete"

	_, err := r.store.col(ColBundles).Doc(id).Delete(ctx)
	return wrapErr(op, err)
}

// Watch delivers a full replacement snapshot of the bundles collection on
// every change until ctx is canceled.
func (r *BundleRepo) Watch(ctx context.Context, fn func([]domain.Bundle)) error {
	const op = "repository.firestore.bundles.Watch"

	snaps := r.store.col(ColBundles).Snapshots(ctx)
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

		bundles := make([]domain.Bundle, 0, len(docs))
		for _, doc := range docs {
			bundles = append(bundles, decodeBundle(doc.Ref.ID, doc.Data()))
		}

		fn(bundles)
	}
}
