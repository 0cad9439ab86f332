package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elitemotors/detailing-api/internal/config"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noPreferences struct{}

func (noPreferences) GetPreference(_ context.Context, _ string) (string, error) { return "", nil }
func (noPreferences) SetPreference(_ context.Context, _, _ string) error        { return nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTenantMiddleware(t *testing.T) {
	selector := tenant.NewSelector(noPreferences{})
	r := gin.New()
	r.Use(TenantMiddleware(selector))
	r.GET("/", func(c *gin.Context) {
		fromGin, _ := GetTenant(c)
		fromCtx, _ := tenant.FromContext(c.Request.Context())
		c.String(http.StatusOK, fromGin.String()+"|"+fromCtx.String())
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "elite|elite", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TenantHeader, "Shahi")
	rec = serve(r, req)
	assert.Equal(t, "shahi|shahi", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TenantHeader, "unknown")
	rec = serve(r, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthAndRole(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.Use(AuthMiddleware(jwtManager), RequireRole("admin"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	viewer, err := jwtManager.GenerateAccessToken(uuid.New(), "viewer@elite.test", []string{"viewer"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	admin, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@elite.test", []string{"admin"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestRateLimiterKeysByTenant(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	r := gin.New()
	r.Use(TenantMiddleware(tenant.NewSelector(noPreferences{})), rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(db string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantHeader, db)
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, get("elite"))
	assert.Equal(t, http.StatusOK, get("elite"))
	assert.Equal(t, http.StatusTooManyRequests, get("elite"))
	assert.Equal(t, http.StatusOK, get("shahi"), "each database has its own budget")
	assert.Equal(t, 2, rl.Stats()["active_keys"])
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("ip:1.2.3.4")
	now = now.Add(2 * time.Minute)
	rl.getLimiter("tenant:elite")
	rl.cleanup()

	assert.Equal(t, 1, rl.Stats()["active_keys"])
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(config.RateLimitConfig{Requests: 120, Duration: 60})
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 0.0001)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(config.RateLimitConfig{}))
}

func TestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := serve(r, req)
	assert.Equal(t, "req-42", rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
