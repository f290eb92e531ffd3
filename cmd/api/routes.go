package main

import (
	"context"
	"net/http"
	"time"

	"callflow-studio/internal/httpapi"
	"callflow-studio/internal/rbac"
	"callflow-studio/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc, m *metrics.Metrics, ready func(context.Context) error) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := r.Group("/v1")

	// Development token issuance; the handler refuses when disabled.
	v1.POST("/auth/token", h.IssueToken)
	v1.GET("/routing/ops", h.ListOperations)

	// protected API group
	routing := v1.Group("/routing")
	routing.Use(authMW)
	{
		view := routing.Group("")
		view.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.ViewRoles...)...)
		view.GET("", h.GetRouting)
		view.GET("/diagram", h.GetDiagram)
		view.GET("/history", h.History)

		edit := routing.Group("")
		edit.Use(httpapi.RequireWorkspaceAndAnyRole(rbac.EditRoles...)...)
		edit.POST("/ops/:op", h.ApplyOperation)
		edit.PUT("/mode", h.SelectMode)
		edit.PUT("", h.ReplaceRouting)
		edit.DELETE("", h.ResetRouting)
	}
}
