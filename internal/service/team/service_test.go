package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ximianer/lightwave-erp/internal/domain"
)

func TestCreateUserRefusesMissingCredentials(t *testing.T) {
	s := New(nil, nil, nil, Config{})

	_, err := s.CreateUser(context.Background(), "", "pw", domain.RoleTechnician)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = s.CreateUser(context.Background(), "maria", "", domain.RoleTechnician)
	assert.ErrorIs(t, err, ErrMissingCredentials)

	// whitespace-only usernames trim down to nothing
	_, err = s.CreateUser(context.Background(), "   ", "pw", domain.RoleTechnician)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCreateUserRefusesUnknownRole(t *testing.T) {
	s := New(nil, nil, nil, Config{})

	_, err := s.CreateUser(context.Background(), "maria", "pw", domain.Role("Praktikant"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}
