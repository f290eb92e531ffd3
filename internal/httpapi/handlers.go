package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"callflow-studio/internal/audit"
	"callflow-studio/internal/auth"
	"callflow-studio/internal/callrouting"
	"callflow-studio/internal/rbac"
	"callflow-studio/internal/routingconfig"
	"callflow-studio/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth    *auth.Manager
	Routing *routingconfig.Service

	// IssueTokens enables the development token endpoint.
	IssueTokens bool
}

// --- Auth ---

type tokenRequest struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

// IssueToken hands out a token pair without checking credentials.
// Only wired outside production.
func (h Handlers) IssueToken(c *gin.Context) {
	if !h.IssueTokens {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.WorkspaceID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, workspace_id, role required"})
		return
	}
	if !rbac.IsKnownRole(req.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.WorkspaceID, req.Role)
	if err != nil {
		logger.FromGin(c).Error("token issuance failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// --- Routing ---

// ListOperations describes what the form can send.
func (h Handlers) ListOperations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operations": callrouting.Operations(),
		"modes": []callrouting.ModeKind{
			callrouting.ModeNone,
			callrouting.ModePhoneTree,
			callrouting.ModeCallForwarding,
			callrouting.ModeSequentialCall,
			callrouting.ModeSIP,
		},
	})
}

func (h Handlers) GetRouting(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	v, err := h.Routing.Current(c.Request.Context(), workspaceID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// GetDiagram returns only the renderer input.
func (h Handlers) GetDiagram(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	v, err := h.Routing.Current(c.Request.Context(), workspaceID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v.Graph)
}

// ApplyOperation runs the form action named by :op.
func (h Handlers) ApplyOperation(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	op := callrouting.Operation(c.Param("op"))
	v, err := h.Routing.Apply(c.Request.Context(), workspaceID, actorFrom(c), op)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type selectModeRequest struct {
	Mode string `json:"mode"`
}

func (h Handlers) SelectMode(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	var req selectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	kind, ok := callrouting.ParseModeKind(req.Mode)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown routing mode"})
		return
	}
	v, err := h.Routing.Select(c.Request.Context(), workspaceID, actorFrom(c), kind)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// ReplaceRouting commits a whole snapshot, e.g. when the form is submitted.
func (h Handlers) ReplaceRouting(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	var snap callrouting.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	v, err := h.Routing.Replace(c.Request.Context(), workspaceID, actorFrom(c), snap)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) ResetRouting(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	v, err := h.Routing.Reset(c.Request.Context(), workspaceID, actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h Handlers) History(c *gin.Context) {
	workspaceID, ok := h.workspace(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	events, err := h.Routing.History(c.Request.Context(), workspaceID, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h Handlers) workspace(c *gin.Context) (string, bool) {
	if h.Routing == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "routing not configured"})
		return "", false
	}
	workspaceID, err := auth.WorkspaceID(c.Request.Context())
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return "", false
	}
	return workspaceID, true
}

func actorFrom(c *gin.Context) audit.Actor {
	id, _ := auth.IdentityFrom(c.Request.Context())
	return audit.Actor{UserID: id.UserID, Role: id.Role, IPAddress: c.ClientIP()}
}

// fail maps service errors to status codes. Storage errors are logged, not echoed.
func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, callrouting.ErrUnknownOperation):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, callrouting.ErrConflictingModes),
		errors.Is(err, callrouting.ErrTooManySequentialNumbers):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, routingconfig.ErrWorkspaceRequired):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
	default:
		logger.FromGin(c).Error("routing request failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "routing storage failed"})
	}
}

// RequireWorkspaceAndAnyRole bundles the scoping and role checks for a route group.
func RequireWorkspaceAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireWorkspace(), rbac.RequireAnyRole(roles...)}
}
