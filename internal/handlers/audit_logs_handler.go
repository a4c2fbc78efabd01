package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	log  *zap.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

// List aceita ?action, ?entity, ?entity_id, ?from, ?to (YYYY-MM-DD), ?page e ?limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	// --------------------------------------------------
	// Filtros (sempre protegidos pela empresa)
	// --------------------------------------------------

	f := audit.Filter{
		CompanyID: p.CompanyID,
		Action:    c.Query("action"),
		Entity:    c.Query("entity"),
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	entityID, ok := optionalIDQuery(c, "entity_id")
	if !ok {
		return
	}
	f.EntityID = entityID

	if from := c.Query("from"); from != "" {
		d, err := timezone.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "from inválido, use YYYY-MM-DD.")
			return
		}
		f.From = d
	}

	if to := c.Query("to"); to != "" {
		d, err := timezone.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidInput, "to inválido, use YYYY-MM-DD.")
			return
		}
		f.To = d
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	page, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		h.log.Error("audit list failed", zap.Error(err))
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.OK(c, page)
}
