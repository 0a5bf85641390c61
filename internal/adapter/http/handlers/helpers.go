package handlers

import (
	"net/http"

	"oficina_pro/internal/adapter/http/middleware"
	"oficina_pro/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)

// tenantFrom reads the tenant set by the auth middleware. Routes registered
// without RequireAuth never reach the handlers in this package.
func tenantFrom(c *gin.Context) string {
	return c.GetString(middleware.ContextTenantKey)
}
