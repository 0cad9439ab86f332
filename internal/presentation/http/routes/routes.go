package routes

import (
	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/config"
	domainRepo "github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/presentation/http/handler"
	"github.com/elitemotors/detailing-api/internal/presentation/http/middleware"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	Customer    *handler.CustomerHandler
	ServiceType *handler.ServiceTypeHandler
	Servicing   *handler.ServicingHandler
	SparePart   *handler.SparePartHandler
	Sale        *handler.SaleHandler
	Showroom    *handler.ShowroomHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
	Invoice     *handler.InvoiceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Selector        *tenant.Selector
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit))
	}

	v1 := router.Group("/api/v1")
	{
		// Public site: showroom and contact form, limited per client IP
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerPublicRoutes(public, h)

		// Back office
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(deps.JWTManager))
		admin.Use(middleware.RequireRole(service.RoleAdmin))
		admin.Use(middleware.TenantMiddleware(deps.Selector))
		admin.Use(rateLimiter.Middleware())
		admin.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		registerAdminRoutes(admin, h)
	}

	return router
}

func registerPublicRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/auth/login", h.Auth.Login)

	showroom := rg.Group("/showroom")
	{
		showroom.GET("/cars", h.Showroom.List)
		showroom.GET("/hero", h.Showroom.Hero)
		showroom.GET("/cars/:id", h.Showroom.Get)
		showroom.GET("/cars/:id/contact", h.Showroom.InterestLink)
	}

	rg.POST("/contact/inquiry", h.Showroom.Inquiry)
}

func registerAdminRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/auth/me", h.Auth.Me)

	rg.GET("/database", h.Tenant.GetCurrent)
	rg.PUT("/database", h.Tenant.Switch)

	rg.GET("/dashboard", h.Dashboard.GetStats)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/merged", h.Customer.ListMerged)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/vehicles", h.Customer.Vehicles)
	}

	types := rg.Group("/service-types")
	{
		types.GET("", h.ServiceType.List)
		types.POST("", h.ServiceType.Create)
		types.GET("/:id", h.ServiceType.Get)
		types.PUT("/:id", h.ServiceType.Update)
		types.DELETE("/:id", h.ServiceType.Delete)
	}

	services := rg.Group("/services")
	{
		services.GET("", h.Servicing.List)
		services.GET("/upcoming", h.Servicing.Upcoming)
		services.POST("", h.Servicing.Create)
		services.GET("/:id", h.Servicing.Get)
		services.DELETE("/:id", h.Servicing.Delete)
		services.GET("/:id/invoice", h.Invoice.Service)
	}

	parts := rg.Group("/spare-parts")
	{
		parts.GET("", h.SparePart.List)
		parts.GET("/low-stock", h.SparePart.LowStock)
		parts.POST("", h.SparePart.Create)
		parts.GET("/:id", h.SparePart.Get)
		parts.PUT("/:id", h.SparePart.Update)
		parts.DELETE("/:id", h.SparePart.Delete)
		parts.POST("/:id/adjust", h.SparePart.AdjustStock)
	}

	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.GET("/:id/invoice", h.Invoice.Sale)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("", h.Report.GetReport)
		reports.GET("/chart", h.Report.GetChartData)
		reports.GET("/top-customers", h.Report.GetTopCustomers)
		reports.GET("/export", h.Report.Export)
	}

	showroom := rg.Group("/showroom/cars")
	{
		showroom.POST("", h.Showroom.Create)
		showroom.PUT("/:id", h.Showroom.Update)
		showroom.DELETE("/:id", h.Showroom.Delete)
		showroom.DELETE("/:id/images/:image_id", h.Showroom.DeleteImage)
	}
}
