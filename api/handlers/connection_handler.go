// api/handlers/connection_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asklytics/asklytics-backend/api/models"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/core"
	"github.com/asklytics/asklytics-backend/internal/logger"
	"github.com/asklytics/asklytics-backend/internal/schema"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// ConnectionHandler serves the endpoints that touch only the caller's
// target database: /test-connection, /schema, and /execute-sql.
//
// Errors on these routes travel in the response payload with HTTP 200;
// callers distinguish outcomes by shape, not status.
type ConnectionHandler struct {
	Cfg        *config.Config
	OpenTarget storage.TargetOpener
}

func NewConnectionHandler(cfg *config.Config) *ConnectionHandler {
	return &ConnectionHandler{
		Cfg:        cfg,
		OpenTarget: storage.NewTargetOpener(cfg),
	}
}

// TestConnection verifies the descriptor reaches a live database. No query
// beyond the driver's ping is executed.
func (h *ConnectionHandler) TestConnection(c *gin.Context) {
	var req models.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db, err := h.OpenTarget(c.Request.Context(), req.Connection)
	if err != nil {
		var missing *core.MissingFieldsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "Connection failed: " + err.Error()})
		return
	}
	defer db.Close()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Database connection successful!"})
}

// GetSchema returns the target database's full schema snapshot.
func (h *ConnectionHandler) GetSchema(c *gin.Context) {
	var req models.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	db, err := h.OpenTarget(c.Request.Context(), req.Connection)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	defer db.Close()

	snapshot, err := schema.NewIntrospector(db).Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schema": snapshot, "tableCount": len(snapshot)})
}

// ExecuteSQL runs caller-written SQL directly: same sanitizer and executor
// as the NL path, minus the LLM.
func (h *ConnectionHandler) ExecuteSQL(c *gin.Context) {
	var req models.ExecuteSQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.SQL == "" {
		c.JSON(http.StatusOK, gin.H{"error": "SQL is required and cannot be empty."})
		return
	}

	sqlText, err := core.SanitizeSQL(req.SQL)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	db, err := h.OpenTarget(c.Request.Context(), req.Connection)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	defer db.Close()

	result, err := storage.ExecuteSQL(c.Request.Context(), db, sqlText)
	if err != nil {
		customLog.Warnf("ExecuteSQL: execution failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	if result.IsRead {
		c.JSON(http.StatusOK, gin.H{"sql": sqlText, "data": result.Rows, "rowCount": len(result.Rows)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sql":      sqlText,
		"message":  fmt.Sprintf("%d rows affected.", result.RowsAffected),
		"rowCount": result.RowsAffected,
	})
}
