package middleware

import (
	"net/http"
	"strings"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase"
	"oficina_pro/pkg"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth. The tenant is the authenticated username;
// every repository call downstream is scoped to it.
const (
	ContextTenantKey = "tenant"
	ContextRoleKey   = "role"
)

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid credentials", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient role for this operation", http.StatusForbidden)
)

// RequireAuth verifies the bearer token and stores the session's tenant and
// role on the request context.
func RequireAuth(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		session, err := auth.Verify(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
		if err != nil {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		c.Set(ContextTenantKey, session.Username)
		c.Set(ContextRoleKey, string(session.Role))
		c.Next()
	}
}

// RequireRole gates an endpoint to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := entities.Role(c.GetString(ContextRoleKey))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}
