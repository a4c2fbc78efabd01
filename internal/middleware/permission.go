package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/permission"
)

// RequirePermission exige nível mínimo na função para o perfil autenticado.
func RequirePermission(
	checker *permission.Checker,
	functionID string,
	minLevel permission.Level,
	log *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			abortUnauthorized(c, "missing_principal")
			return
		}

		allowed, err := checker.Allowed(c.Request.Context(), p, functionID, minLevel)
		if err != nil {
			log.Error("permission check failed",
				zap.String("function", functionID),
				zap.Error(err),
			)
			httperr.Internal(c, "internal_error", "Erro interno.")
			c.Abort()
			return
		}
		if !allowed {
			httperr.Forbidden(c, httperr.CodeForbidden, "Sem permissão para "+functionID+".")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly restringe rotas de configuração ao perfil admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsAdmin() {
			httperr.Forbidden(c, httperr.CodeForbidden, "Apenas administradores.")
			c.Abort()
			return
		}
		c.Next()
	}
}
