package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/middleware"
)

// principal lê o usuário autenticado; ausente = 401 já escrito.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "missing_principal", "Não autenticado.")
	}
	return p, ok
}

func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, name+" inválido.")
		return 0, false
	}
	return uint(v), true
}

// optionalIDQuery devolve nil quando o parâmetro não foi enviado.
func optionalIDQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, name+" inválido.")
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.HTTPError{
		Code:    httperr.CodeInvalidInput,
		Message: "Dados inválidos.",
		Details: map[string]any{"reason": err.Error()},
	})
}
