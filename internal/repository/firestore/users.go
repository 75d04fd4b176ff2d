package firestore

import (
	"context"

	"google.golang.org/api/iterator"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

type UserRepo struct {
	store *Store
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const op = "repository.firestore.users.List"

	it := r.store.col(ColUsers).Documents(ctx)
	defer it.Stop()

	users := []domain.User{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(op, err)
		}
		users = append(users, decodeUser(doc.Ref.ID, doc.Data()))
	}

	return users, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (string, error) {
	const op = "repository.firestore.users.Create"

	ref, _, err := r.store.col(ColUsers).Add(ctx, encodeUser(u))
	if err != nil {
		return "", wrapErr(op, err)
	}

	return ref.ID, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.firestore.users.Delete"

	_, err := r.store.col(ColUsers).Doc(id).Delete(ctx)
	return wrapErr(op, err)
}

// Watch delivers a full replacement snapshot of the users collection on
// every change until ctx is canceled.
func (r *UserRepo) Watch(ctx context.Context, fn func([]domain.User)) error {
	const op = "repository.firestore.users.Watch"

	snaps := r.store.col(ColUsers).Snapshots(ctx)
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

		users := make([]domain.User, 0, len(docs))
		for _, doc := range docs {
			users = append(users, decodeUser(doc.Ref.ID, doc.Data()))
		}

		fn(users)
	}
}
