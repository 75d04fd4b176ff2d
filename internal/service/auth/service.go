// Package auth implements the login gate: a flat equality check against the
// users collection plus the legacy bypass credential pair.
//
// SECURITY: passwords are stored and compared in plaintext and the bypass
// pair is a known constant. Both are retained, pre-existing behaviors of the
// system this replaces. Do not copy this package into anything that guards
// real accounts.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ximianer/lightwave-erp/internal/domain"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
)

type Config struct {
	BypassUsername string
	BypassPassword string
}

// UserSource lists the current team accounts; implemented by the users
// collection repository.
type UserSource interface {
	List(ctx context.Context) ([]domain.User, error)
}

type Service struct {
	users   UserSource
	limiter *redisrepo.SlidingWindowLimiter
	cfg     Config
}

func New(users UserSource, limiter *redisrepo.SlidingWindowLimiter, cfg Config) *Service {
	if cfg.BypassUsername == "" {
		cfg.BypassUsername = "admin"
	}
	if cfg.BypassPassword == "" {
		cfg.BypassPassword = "123"
	}

	return &Service{
		users:   users,
		limiter: limiter,
		cfg:     cfg,
	}
}

// Login checks the credential pair and returns the matched account.
//
// Parameters:
//   - ctx: request-scoped context.
//   - username: matched case-insensitively.
//   - password: compared by equality.
//   - rlKey: rate-limit bucket (typically "ip:<addr>"); empty disables limiting.
//
// Returns:
//   - *domain.User: the account, or the synthetic owner account for the
//     bypass pair.
//   - error: auth.ErrAccessDenied on any mismatch, with no detail about
//     which part was wrong.
func (s *Service) Login(ctx context.Context, username, password, rlKey string) (*domain.User, error) {
	const op = "service.auth.Login"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	if strings.EqualFold(username, s.cfg.BypassUsername) && password == s.cfg.BypassPassword {
		return &domain.User{
			ID:       "ADMIN",
			Username: "Administrator",
			Role:     domain.RoleOwner,
		}, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	for _, u := range users {
		if strings.EqualFold(u.Username, username) && u.Password == password {
			found := u
			found.Password = ""
			return &found, nil
		}
	}

	return nil, fmt.Errorf("%s:%w", op, ErrAccessDenied)
}
