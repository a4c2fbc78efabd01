package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	"github.com/BruksfildServices01/dock-scheduler/internal/config"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
)

const ContextPrincipal = "principal"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		p, ok := principalFromClaims(claims)
		if !ok {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom lê o usuário autenticado gravado por AuthMiddleware.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func principalFromClaims(claims jwt.MapClaims) (auth.Principal, bool) {
	userID, ok1 := claims["sub"].(float64)
	companyID, ok2 := claims["companyId"].(float64)
	roleStr, _ := claims["role"].(string)
	role, ok3 := auth.ParseRole(roleStr)
	if !ok1 || !ok2 || !ok3 || companyID <= 0 {
		return auth.Principal{}, false
	}

	p := auth.Principal{
		UserID:     uint(userID),
		CompanyID:  uint(companyID),
		Role:       role,
		PlantID:    optionalID(claims, "plantId"),
		SupplierID: optionalID(claims, "supplierId"),
	}
	return p, true
}

func optionalID(claims jwt.MapClaims, key string) *uint {
	v, ok := claims[key].(float64)
	if !ok || v <= 0 {
		return nil
	}
	id := uint(v)
	return &id
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Não autenticado.",
	})
}
