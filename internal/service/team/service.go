// Package team manages the crew accounts shown in the team view and offered
// for event assignment.
package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ximianer/lightwave-erp/internal/domain"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
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

// ListUsers returns the crew with passwords blanked; the stored password
// never leaves the service layer.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	const op = "service.team.ListUsers"

	users, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeySnapshot(fsrepo.ColUsers),
		s.cfg.SnapshotTTL,
		func(ctx context.Context) ([]domain.User, error) {
			return s.store.Users().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	public := make([]domain.User, len(users))
	for i, u := range users {
		u.Password = ""
		public[i] = u
	}

	return public, nil
}

// CreateUser adds a crew account. Usernames must be unique
// case-insensitively because login matches them that way.
//
// Returns:
//   - string: the new account identity.
//   - error: team.ErrMissingCredentials, team.ErrInvalidRole or
//     team.ErrUsernameTaken on refusal.
func (s *Service) CreateUser(ctx context.Context, username, password string, role domain.Role) (string, error) {
	const op = "service.team.CreateUser"

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%s:%w", op, ErrMissingCredentials)
	}
	if !role.Valid() {
		return "", fmt.Errorf("%s:%w", op, ErrInvalidRole)
	}

	existing, err := s.store.Users().List(ctx)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, username) {
			return "", fmt.Errorf("%s:%w", op, ErrUsernameTaken)
		}
	}

	id, err := s.store.Users().Create(ctx, domain.User{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx)

	return id, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	const op = "service.team.DeleteUser"

	existing, err := s.store.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	known := false
	for _, u := range existing {
		if u.ID == id {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%s:%w", op, ErrUserNotFound)
	}

	if err := s.store.Users().Delete(ctx, id); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.announce(ctx)

	return nil
}

func (s *Service) announce(ctx context.Context) {
	_ = s.cache.InvalidateCollection(ctx, fsrepo.ColUsers)
	_ = s.pubsub.PublishChanged(ctx, fsrepo.ColUsers)
}
