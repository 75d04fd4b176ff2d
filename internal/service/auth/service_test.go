package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

type fakeUsers struct {
	users []domain.User
	err   error
}

func (f *fakeUsers) List(ctx context.Context) ([]domain.User, error) {
	return f.users, f.err
}

func TestLoginBypassCredential(t *testing.T) {
	s := New(&fakeUsers{}, nil, Config{})

	u, err := s.Login(context.Background(), "Admin", "123", "")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, u.Role)
	assert.Equal(t, "ADMIN", u.ID)
}

func TestLoginMatchesCaseInsensitively(t *testing.T) {
	s := New(&fakeUsers{users: []domain.User{
		{ID: "u-1", Username: "Maria", Password: "geheim", Role: domain.RoleTechnician},
	}}, nil, Config{})

	u, err := s.Login(context.Background(), "mARIA", "geheim", "")

	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Empty(t, u.Password, "password must not leave the service")
}

func TestLoginDenialIsGeneric(t *testing.T) {
	s := New(&fakeUsers{users: []domain.User{
		{Username: "maria", Password: "geheim"},
	}}, nil, Config{})

	_, errUnknown := s.Login(context.Background(), "nobody", "geheim", "")
	_, errWrongPass := s.Login(context.Background(), "maria", "falsch", "")

	assert.ErrorIs(t, errUnknown, ErrAccessDenied)
	assert.ErrorIs(t, errWrongPass, ErrAccessDenied)
	// same sentinel either way: unknown user and wrong password are
	// indistinguishable to the caller
}

func TestLoginPasswordIsCaseSensitive(t *testing.T) {
	s := New(&fakeUsers{users: []domain.User{
		{Username: "maria", Password: "Geheim"},
	}}, nil, Config{})

	_, err := s.Login(context.Background(), "maria", "geheim", "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLoginStoreFailurePassesThrough(t *testing.T) {
	boom := errors.New("store down")
	s := New(&fakeUsers{err: boom}, nil, Config{})

	_, err := s.Login(context.Background(), "maria", "geheim", "")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}
