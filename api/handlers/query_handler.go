// api/handlers/query_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asklytics/asklytics-backend/api/middleware"
	"github.com/asklytics/asklytics-backend/api/models"
	"github.com/asklytics/asklytics-backend/config"
	"github.com/asklytics/asklytics-backend/internal/core"
	"github.com/asklytics/asklytics-backend/internal/domain"
	"github.com/asklytics/asklytics-backend/internal/llm"
	"github.com/asklytics/asklytics-backend/internal/schema"
	"github.com/asklytics/asklytics-backend/internal/storage"
)

// QueryHandler runs the core pipeline: resolve connection, introspect
// schema, generate SQL, sanitize, execute. Everything happens within the
// request; nothing is cached or retried.
type QueryHandler struct {
	Cfg        *config.Config
	AuthDB     *sql.DB // nil when the auth variant is not wired
	Backend    llm.Backend
	OpenTarget storage.TargetOpener
}

func NewQueryHandler(authDB *sql.DB, backend llm.Backend, cfg *config.Config) *QueryHandler {
	return &QueryHandler{
		Cfg:        cfg,
		AuthDB:     authDB,
		Backend:    backend,
		OpenTarget: storage.NewTargetOpener(cfg),
	}
}

// Query handles POST /query.
func (h *QueryHandler) Query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusOK, gin.H{"error": "Prompt is required and cannot be empty."})
		return
	}

	ctx := c.Request.Context()

	db, err := h.OpenTarget(ctx, req.Connection)
	if err != nil {
		var missing *core.MissingFieldsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"error": err.Error() + ". Please check your credentials."})
		return
	}
	defer db.Close()

	raw, err := h.Backend.GenerateSQL(ctx, schema.NewIntrospector(db), req.Prompt)
	if err != nil {
		customLog.Warnf("Query: generation failed (backend=%s): %v", h.Backend.Name(), err)
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	sqlText, err := core.SanitizeSQL(raw)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error() + ". Please rephrase your question."})
		return
	}
	customLog.Printf("Query: generated SQL: %s", sqlText)

	result, err := storage.ExecuteSQL(ctx, db, sqlText)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	rowCount := int(result.RowsAffected)
	if result.IsRead {
		rowCount = len(result.Rows)
	}
	h.recordHistory(c, req, sqlText, rowCount)

	if result.IsRead {
		c.JSON(http.StatusOK, gin.H{"sql": sqlText, "data": result.Rows})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sql": sqlText, "message": fmt.Sprintf("%d rows affected.", result.RowsAffected)})
}

// recordHistory appends the round trip to the caller's history when the
// request carried a valid session token. Failures here never affect the
// query response.
func (h *QueryHandler) recordHistory(c *gin.Context, req models.QueryRequest, sqlText string, rowCount int) {
	if h.AuthDB == nil {
		return
	}
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return
	}

	rec := domain.QueryRecord{
		UserID:   userID,
		Prompt:   req.Prompt,
		SQL:      sqlText,
		Database: req.Connection.Database,
		RowCount: rowCount,
	}
	if err := storage.InsertQueryRecord(c.Request.Context(), h.AuthDB, rec); err != nil {
		customLog.Warnf("Query: failed to record history for user %s: %v", userID, err)
	}
}
