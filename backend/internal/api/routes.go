// Package api serves the action graph over HTTP.
package api

import (
	"net/http"
	"strconv"

	"action-graph/backend/internal/graph"
	"action-graph/backend/internal/tracker"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type handler struct {
	tracker *tracker.Tracker
	log     *zap.Logger
}

type similarRequest struct {
	MCPType    string       `json:"mcpType" binding:"required"`
	ActionType string       `json:"actionType" binding:"required"`
	Parameters graph.Params `json:"parameters"`
	Limit      int          `json:"limit" binding:"gte=0"`
}

type suggestRequest struct {
	UserID            string       `json:"userId"`
	MCPType           string       `json:"mcpType" binding:"required"`
	CurrentActionType string       `json:"currentActionType" binding:"required"`
	CurrentParameters graph.Params `json:"currentParameters"`
}

type lookupQuery struct {
	Email string `form:"email" binding:"required"`
	Env   string `form:"env" binding:"omitempty,oneof=uat prod"`
}

// RegisterRoutes mounts the tracker endpoints under /api. With a nil tracker
// every endpoint answers 503.
func RegisterRoutes(router gin.IRouter, t *tracker.Tracker, log *zap.Logger) {
	h := &handler{tracker: t, log: log}

	api := router.Group("/api")
	api.Use(h.requireTracker)
	{
		api.POST("/actions", h.recordAction)
		api.POST("/actions/similar", h.similarActions)
		api.POST("/actions/suggest", h.suggestNextAction)
		api.GET("/actions/recommendations", h.recommendations)
		api.GET("/users/lookup", h.lookupUser)
		api.GET("/users/:id/actions", h.userHistory)
	}
}

// CORS allows browser dashboards on other origins to call the API
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *handler) requireTracker(c *gin.Context) {
	if h.tracker == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   apperrors.ErrTrackingDisabled.Error(),
		})
		return
	}
	c.Next()
}

func (h *handler) recordAction(c *gin.Context) {
	var req tracker.RecordActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.tracker.RecordAction(c.Request.Context(), req)
	if !res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handler) similarActions(c *gin.Context) {
	var req similarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	similar, err := h.tracker.FindSimilarActions(c.Request.Context(), tracker.SimilarityQuery{
		MCPType:    req.MCPType,
		ActionType: req.ActionType,
		Parameters: req.Parameters,
		Limit:      req.Limit,
	})
	if err != nil {
		h.fail(c, "Failed to find similar actions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": similar})
}

func (h *handler) suggestNextAction(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := h.tracker.SuggestNextAction(c.Request.Context(), tracker.SuggestionQuery{
		UserID:            req.UserID,
		MCPType:           req.MCPType,
		CurrentActionType: req.CurrentActionType,
		CurrentParameters: req.CurrentParameters,
	})
	if err != nil {
		h.fail(c, "Failed to suggest next action", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": suggestions})
}

func (h *handler) userHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	history, err := h.tracker.GetUserActionHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.fail(c, "Failed to get user history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

func (h *handler) lookupUser(c *gin.Context) {
	var q lookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.tracker.FindUserByEmail(c.Request.Context(), q.Email, q.Env)
	if apperrors.IsUserNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		h.fail(c, "Failed to find user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *handler) recommendations(c *gin.Context) {
	recs, err := h.tracker.GetActionRecommendations(c.Request.Context(), c.Query("context"))
	if err != nil {
		h.fail(c, "Failed to get recommendations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": recs})
}

func (h *handler) fail(c *gin.Context, msg string, err error) {
	switch {
	case apperrors.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	case apperrors.IsErrorType(err, apperrors.ErrorTypeContext):
		h.log.Warn(msg, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": msg})
		return
	}
	h.log.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}
