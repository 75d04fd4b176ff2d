package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

type EventRepo struct {
	store *Store
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	const op = "repository.firestore.events.List"

	it := r.store.col(ColEvents).Documents(ctx)
	defer it.Stop()

	events := []domain.Event{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(op, err)
		}
		events = append(events, decodeEvent(doc.Ref.ID, doc.Data()))
	}

	return events, nil
}

func (r *EventRepo) Get(ctx context.Context, id string) (*domain.Event, error) {
	const op = "repository.firestore.events.Get"

	doc, err := r.store.col(ColEvents).Doc(id).Get(ctx)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	ev := decodeEvent(doc.Ref.ID, doc.Data())
	return &ev, nil
}

// Create writes a new event document and returns its generated identity.
func (r *EventRepo) Create(ctx context.Context, ev domain.Event) (string, error) {
	const op = "repository.firestore.events.Create"

	ref, _, err := r.store.col(ColEvents).Add(ctx, encodeEvent(ev))
	if err != nil {
		return "", wrapErr(op, err)
	}

	return ref.ID, nil
}

// Update rewrites the event's fields in place, preserving its identity.
func (r *EventRepo) Update(ctx context.Context, id string, ev domain.Event) error {
	const op = "repository.firestore.events.Update"

	_, err := r.store.col(ColEvents).Doc(id).Set(ctx, encodeEvent(ev), firestore.MergeAll)
	return wrapErr(op, err)
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	const op = "repository.firestore.events.Delete"

	_, err := r.store.col(ColEvents).Doc(id).Delete(ctx)
	return wrapErr(op, err)
}

// Watch delivers a full replacement snapshot of the events collection on
// every change until ctx is canceled. It blocks; run it from the watcher.
func (r *EventRepo) Watch(ctx context.Context, fn func([]domain.Event)) error {
	const op = "repository.firestore.events.Watch"

	snaps := r.store.col(ColEvents).Snapshots(ctx)
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

		events := make([]domain.Event, 0, len(docs))
		for _, doc := range docs {
			events = append(events, decodeEvent(doc.Ref.ID, doc.Data()))
		}

		fn(events)
	}
}
