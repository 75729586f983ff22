// Package opsapi serves the operator dashboard: service health, the server
// event audit feed, and user balance lookups. It is read-only; every mutation
// in the system happens through the scheduled jobs.
package opsapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clickchain/settlement/internal/logger"
	"github.com/clickchain/settlement/internal/store"
	"go.uber.org/zap"
)

const (
	defaultEventsLimit = 50
	maxEventsLimit     = 500
)

// Handler defines the ops API handlers
//
//go:generate mockgen -source=handler.go -destination=../mocks/opsapi_handler.go -package=mocks -mock_names=Handler=MockOpsHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// ListServerEvents retrieves the newest operator events
	// GET /api/v1/events?limit=<limit>
	ListServerEvents(c *gin.Context)

	// GetUserBalance retrieves a user's spendable balance
	// GET /api/v1/users/:uuid/balance
	GetUserBalance(c *gin.Context)
}

type handler struct {
	store store.Store
}

// NewHandler creates the ops API handler
func NewHandler(s store.Store) Handler {
	return &handler{store: s}
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) ListServerEvents(c *gin.Context) {
	limit := defaultEventsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxEventsLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 500"})
			return
		}
		limit = parsed
	}

	events, err := h.store.ListRecentServerEvents(c.Request.Context(), limit)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *handler) GetUserBalance(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user uuid"})
		return
	}

	user, err := h.store.GetUserByUUID(c.Request.Context(), userUUID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("user_id", userUUID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	balance, err := h.store.GetUserBalance(c.Request.Context(), userUUID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("user_id", userUUID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userUUID.String(),
		"balance": balance,
	})
}
