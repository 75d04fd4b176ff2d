package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Ximianer/lightwave-erp/internal/booking"
	"github.com/Ximianer/lightwave-erp/internal/domain"
	"github.com/Ximianer/lightwave-erp/internal/metrics"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	"github.com/Ximianer/lightwave-erp/internal/repository"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
	"github.com/Ximianer/lightwave-erp/internal/service"
	"github.com/Ximianer/lightwave-erp/internal/service/auth"
	"github.com/Ximianer/lightwave-erp/internal/service/inventory"
	"github.com/Ximianer/lightwave-erp/internal/service/planner"
	"github.com/Ximianer/lightwave-erp/internal/service/team"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	cache *redisrepo.Cache,
	pubsub *redisx.CollectionsPubSub,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		LoggingMiddleware(logger),
		RequestIDMiddleware(),
		CORS(),
		metrics.PrometheusMiddleware(),
	)
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health + metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public API
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.POST("/events", handleCreateEvent(svcs, idem))
	r.PUT("/events/:id", handleUpdateEvent(svcs))
	r.DELETE("/events/:id", handleDeleteEvent(svcs))

	r.POST("/planner/ledger", handleApplyLedger(svcs))

	r.GET("/inventory", handleListInventory(svcs))
	r.GET("/bundles", handleListBundles(svcs))
	r.GET("/users", handleListUsers(svcs))

	r.GET("/stream", handleStream(cache, pubsub, logger))

	// Admin-API
	// TODO: add admin middleware
	admin := r.Group("/admin")
	{
		admin.POST("/inventory", handleCreateItem(svcs))
		admin.PUT("/inventory/:id", handleUpdateItem(svcs))
		admin.DELETE("/inventory/:id", handleDeleteItem(svcs))

		admin.POST("/bundles", handleCreateBundle(svcs))
		admin.DELETE("/bundles/:id", handleDeleteBundle(svcs))

		admin.POST("/users", handleCreateUser(svcs))
		admin.DELETE("/users/:id", handleDeleteUser(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Log in
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse "access denied"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		rlKey := "ip:" + c.ClientIP()

		u, err := svcs.Auth.Login(
			c.Request.Context(),
			req.Username,
			req.Password,
			rlKey,
		)
		if err != nil {
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			UserID:   u.ID,
			Username: u.Username,
			Role:     string(u.Role),
		})
	}
}

// @Summary  List events
// @Success  200 {array} domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Planner.ListEvents(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s (lists change often)
		writeJSONWithCache(c, http.StatusOK, events, "public, max-age=15")
	}
}

// @Summary  Get event
// @Param    id  path  string  true  "Event ID"
// @Success  200 {object} domain.Event
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svcs.Planner.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60")
	}
}

// @Summary  Create event (idempotent)
// @Param    req body  SaveEventRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} SaveEventResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  422 {object} ErrorResponse "empty title"
// @Router   /events [post]
func handleCreateEvent(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemEvent(idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		id, err := svcs.Planner.SaveEvent(
			c.Request.Context(),
			draftFromRequest("", req),
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := SaveEventResponse{EventID: id}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Update event
// @Param    id  path  string  true  "Event ID"
// @Param    req body  SaveEventRequest true "payload"
// @Success  200 {object} SaveEventResponse
// @Failure  404 {object} ErrorResponse
// @Failure  422 {object} ErrorResponse "empty title"
// @Router   /events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		id, err := svcs.Planner.SaveEvent(
			c.Request.Context(),
			draftFromRequest(c.Param("id"), req),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, SaveEventResponse{EventID: id})
	}
}

// @Summary  Delete event
// @Param    id  path  string  true  "Event ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Planner.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Apply a booking ledger action
// @Param    req body  LedgerRequest true "payload"
// @Success  200 {object} planner.LedgerResult
// @Failure  404 {object} ErrorResponse "item or bundle not found"
// @Failure  422 {object} ErrorResponse "unknown action"
// @Router   /planner/ledger [post]
func handleApplyLedger(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LedgerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		res, err := svcs.Planner.ApplyLedger(
			c.Request.Context(),
			linesFromInputs(req.Lines),
			planner.LedgerAction{
				Type:     booking.ActionType(req.Action.Type),
				ItemID:   req.Action.ItemID,
				Name:     req.Action.Name,
				BundleID: req.Action.BundleID,
			},
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  List inventory items
// @Success  200 {array} domain.InventoryItem
// @Router   /inventory [get]
func handleListInventory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svcs.Inventory.ListItems(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, items, "public, max-age=15")
	}
}

// @Summary  List bundles
// @Success  200 {array} domain.Bundle
// @Router   /bundles [get]
func handleListBundles(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bundles, err := svcs.Inventory.ListBundles(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, bundles, "public, max-age=15")
	}
}

// @Summary  List team members (passwords blanked)
// @Success  200 {array} domain.User
// @Router   /users [get]
func handleListUsers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svcs.Team.ListUsers(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, users, "public, max-age=15")
	}
}

// @Summary  Create inventory item
// @Param    req body  CreateItemRequest true "payload"
// @Success  201 {object} CreateItemResponse
// @Failure  422 {object} ErrorResponse "empty name"
// @Router   /admin/inventory [post]
func handleCreateItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Inventory.CreateItem(
			c.Request.Context(),
			req.Name,
			req.RentPrice,
			req.Stock,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateItemResponse{ItemID: id})
	}
}

// @Summary  Update inventory item
// @Param    id  path  string  true  "Item ID"
// @Param    req body  CreateItemRequest true "payload"
// @Success  200 {object} CreateItemResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/inventory/{id} [put]
func handleUpdateItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id := c.Param("id")
		if err := svcs.Inventory.UpdateItem(
			c.Request.Context(),
			id,
			req.Name,
			req.RentPrice,
			req.Stock,
		); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, CreateItemResponse{ItemID: id})
	}
}

// @Summary  Delete inventory item
// @Param    id  path  string  true  "Item ID"
// @Success  204
// @Router   /admin/inventory/{id} [delete]
func handleDeleteItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Inventory.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create bundle from current inventory
// @Param    req body  CreateBundleRequest true "payload"
// @Success  201 {object} CreateBundleResponse
// @Failure  404 {object} ErrorResponse "selection references unknown item"
// @Failure  422 {object} ErrorResponse "empty name or selection"
// @Router   /admin/bundles [post]
func handleCreateBundle(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBundleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		selection := make([]inventory.Selection, 0, len(req.Items))
		for _, it := range req.Items {
			selection = append(selection, inventory.Selection{
				ItemID:   it.ItemID,
				Quantity: it.Quantity,
			})
		}
		id, err := svcs.Inventory.CreateBundle(
			c.Request.Context(),
			req.Name,
			selection,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateBundleResponse{BundleID: id})
	}
}

// @Summary  Delete bundle
// @Param    id  path  string  true  "Bundle ID"
// @Success  204
// @Router   /admin/bundles/{id} [delete]
func handleDeleteBundle(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Inventory.DeleteBundle(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create team member
// @Param    req body  CreateUserRequest true "payload"
// @Success  201 {object} CreateUserResponse
// @Failure  409 {object} ErrorResponse "username taken"
// @Failure  422 {object} ErrorResponse "missing credentials / unknown role"
// @Router   /admin/users [post]
func handleCreateUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Team.CreateUser(
			c.Request.Context(),
			req.Username,
			req.Password,
			domain.Role(req.Role),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateUserResponse{UserID: id})
	}
}

// @Summary  Delete team member
// @Param    id  path  string  true  "User ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/users/{id} [delete]
func handleDeleteUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Team.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Helpers ---

func linesFromInputs(in []BookedItemInput) []domain.BookedItem {
	lines := make([]domain.BookedItem, 0, len(in))
	for _, li := range in {
		lines = append(lines, domain.BookedItem{
			ID:       li.ID,
			Name:     li.Name,
			Quantity: li.Quantity,
			Price:    li.Price,
		})
	}
	return lines
}

func draftFromRequest(id string, req SaveEventRequest) *booking.Draft {
	return booking.DraftOf(domain.Event{
		ID:            id,
		Title:         req.Title,
		Location:      req.Location,
		SetupStart:    req.SetupStart,
		EventStart:    req.EventStart,
		EventEnd:      req.EventEnd,
		TeardownEnd:   req.TeardownEnd,
		AssignedUsers: req.AssignedUsers,
		BookedItems:   linesFromInputs(req.BookedItems),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrAccessDenied):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "access denied"})
		return
	// planner service
	case errors.Is(err, planner.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, planner.ErrEmptyTitle):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "event title is required"})
		return
	case errors.Is(err, planner.ErrItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "inventory item not found"})
		return
	case errors.Is(err, planner.ErrBundleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "bundle not found"})
		return
	case errors.Is(err, planner.ErrUnknownAction):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "unknown ledger action"})
		return
	// inventory service
	case errors.Is(err, inventory.ErrEmptyItemName):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "item name is required"})
		return
	case errors.Is(err, inventory.ErrItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "inventory item not found"})
		return
	case errors.Is(err, inventory.ErrEmptyBundleName):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "bundle name is required"})
		return
	case errors.Is(err, inventory.ErrEmptySelection):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "bundle selection is empty"})
		return
	case errors.Is(err, inventory.ErrBundleNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "bundle not found"})
		return
	// team service
	case errors.Is(err, team.ErrMissingCredentials):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "username and password are required"})
		return
	case errors.Is(err, team.ErrInvalidRole):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "unknown role"})
		return
	case errors.Is(err, team.ErrUsernameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username already taken"})
		return
	case errors.Is(err, team.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	// store
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	}

	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream store failure"})
}
