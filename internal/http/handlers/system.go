package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func (a *API) Health(c *gin.Context) {
	Respond(c, http.StatusOK, "ok", nil)
}

// GET /api/db-check
func (a *API) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		RespondError(c, http.StatusInternalServerError, "Database connection failed")
		return
	}
	Respond(c, http.StatusOK, "database reachable", nil)
}
