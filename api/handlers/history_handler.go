// api/handlers/history_handler.go
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asklytics/asklytics-backend/api/middleware"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/core"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

// HistoryHandler serves the authenticated query-history endpoints.
type HistoryHandler struct {
	DB  *sql.DB
	Cfg *config.Config
}

func NewHistoryHandler(db *sql.DB, cfg *config.Config) *HistoryHandler {
	return &HistoryHandler{DB: db, Cfg: cfg}
}

// List returns the caller's most recent queries, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	limit, err := core.ParseHistoryLimit(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	records, err := storage.ListQueryRecords(c.Request.Context(), h.DB, userID, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": records, "count": len(records)})
}

// Clear deletes the caller's entire history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	deleted, err := storage.ClearQueryHistory(c.Request.Context(), h.DB, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
