package middleware

import (
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/gin-gonic/gin"
)

const (
	// TenantHeader lets a request target a database other than the active one
	TenantHeader = "X-Database-Type"

	tenantKey = "tenant"
)

// TenantMiddleware puts the request's database on the request context. The
// header wins over the process-wide selection.
func TenantMiddleware(selector *tenant.Selector) gin.HandlerFunc {
	return func(c *gin.Context) {
		t := selector.Current()
		if raw := c.GetHeader(TenantHeader); raw != "" {
			parsed, err := tenant.Parse(raw)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			t = parsed
		}

		c.Set(tenantKey, t)
		c.Request = c.Request.WithContext(tenant.WithTenant(c.Request.Context(), t))

		c.Next()
	}
}

// GetTenant retrieves the request's database from gin context
func GetTenant(c *gin.Context) (tenant.Type, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return "", false
	}
	t, ok := v.(tenant.Type)
	return t, ok
}
