package service

import (
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	firestore "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redis "github.com/Ximianer/lightwave-erp/internal/repository/redis"
	"github.com/Ximianer/lightwave-erp/internal/service/auth"
	"github.com/Ximianer/lightwave-erp/internal/service/inventory"
	"github.com/Ximianer/lightwave-erp/internal/service/planner"
	"github.com/Ximianer/lightwave-erp/internal/service/team"
)

type Services struct {
	Auth      *auth.Service
	Planner   *planner.Service
	Inventory *inventory.Service
	Team      *team.Service
}

type Config struct {
	Auth      auth.Config
	Planner   planner.Config
	Inventory inventory.Config
	Team      team.Config
}

func NewServices(
	store *firestore.Store,
	cache *redis.Cache,
	pubsub *redisx.CollectionsPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Auth:      auth.New(store.Users(), limiter, cfg.Auth),
		Planner:   planner.New(store, cache, pubsub, cfg.Planner),
		Inventory: inventory.New(store, cache, pubsub, cfg.Inventory),
		Team:      team.New(store, cache, pubsub, cfg.Team),
	}
}
