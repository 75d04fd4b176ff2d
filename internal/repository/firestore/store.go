// Package firestore implements the document-store side of the system: four
// live collections (events, inventory, users, bundles) under the
// artifacts/{appID}/public/data prefix the existing documents use. Reads
// tolerate loosely-typed documents (see codec.go); writes are single-document
// and fire-and-forget: callers rely on the next pushed snapshot, not on
// read-after-write.
package firestore

import (
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Ximianer/lightwave-erp/internal/repository"
)

// Collection names, also used as cache keys and pub/sub payloads.
const (
	ColEvents    = "events"
	ColInventory = "inventory"
	ColUsers     = "users"
	ColBundles   = "bundles"
)

// Collections lists every live collection in watch/cache order.
var Collections = []string{ColEvents, ColInventory, ColUsers, ColBundles}

type Store struct {
	client *firestore.Client
	appID  string
}

func NewStore(client *firestore.Client, appID string) *Store {
	return &Store{
		client: client,
		appID:  appID,
	}
}

func (s *Store) col(name string) *firestore.CollectionRef {
	return s.client.
		Collection("artifacts").
		Doc(s.appID).
		Collection("public").
		Doc("data").
		Collection(name)
}

func (s *Store) Events() *EventRepo       { return &EventRepo{store: s} }
func (s *Store) Inventory() *ItemRepo     { return &ItemRepo{store: s} }
func (s *Store) Users() *UserRepo         { return &UserRepo{store: s} }
func (s *Store) Bundles() *BundleRepo     { return &BundleRepo{store: s} }

// wrapErr maps Firestore errors to repository-level sentinels and wraps them
// with the operation name.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return fmt.Errorf("%s:%w", op, err)
}
