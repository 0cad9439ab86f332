package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elitemotors/detailing-api/internal/application/service"
	"github.com/elitemotors/detailing-api/internal/config"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/internal/infrastructure/database"
	"github.com/elitemotors/detailing-api/internal/infrastructure/repository"
	"github.com/elitemotors/detailing-api/internal/presentation/http/handler"
	"github.com/elitemotors/detailing-api/internal/presentation/http/middleware"
	"github.com/elitemotors/detailing-api/internal/presentation/http/routes"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/logger"
	"github.com/elitemotors/detailing-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

const idempotencySweepInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.WithComponent("main")

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize repositories
	preferenceRepo := repository.NewPreferenceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	serviceTypeRepo := repository.NewServiceTypeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	sparePartRepo := repository.NewSparePartRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	showroomRepo := repository.NewShowroomRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Restore the active database
	selector := tenant.NewSelector(preferenceRepo)
	active, err := selector.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to load database preference, using default")
	}
	log.WithField("database", active).Info("Active database selected")

	// Query cache, shared across instances when Redis is configured
	var bus cache.InvalidationBus
	if cfg.Redis.Addr != "" {
		redisBus, err := cache.NewRedisBus(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, cache invalidation stays local")
		} else {
			defer redisBus.Close()
			bus = redisBus
		}
	}
	queryCache := cache.New(bus, cache.TTLs{
		Transactional: cfg.Cache.TransactionalTTL,
		Dashboard:     cfg.Cache.DashboardTTL,
		Reports:       cfg.Cache.ReportsTTL,
	})
	if err := queryCache.Listen(ctx); err != nil {
		log.WithError(err).Warn("Failed to subscribe to cache invalidations")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize services
	authService, err := service.NewAuthService(cfg.Admin, jwtManager)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure admin account")
	}
	tenantService := service.NewTenantService(selector, queryCache)
	customerService := service.NewCustomerService(customerRepo, vehicleRepo, saleRepo, queryCache)
	serviceTypeService := service.NewServiceTypeService(serviceTypeRepo, queryCache)
	servicingService := service.NewServicingService(serviceRepo, serviceTypeRepo, vehicleRepo, queryCache)
	sparePartService := service.NewSparePartService(sparePartRepo, queryCache)
	saleService := service.NewSaleService(saleRepo, queryCache)
	showroomService := service.NewShowroomService(showroomRepo, queryCache, cfg.Contact.WhatsAppNumber)
	dashboardService := service.NewDashboardService(serviceRepo, saleRepo, analyticsRepo, queryCache)
	reportService := service.NewReportService(serviceRepo, saleRepo, customerRepo, sparePartRepo, queryCache)
	invoiceService := service.NewInvoiceService(serviceRepo, saleRepo)

	ping := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(cfg.App.Name, selector, ping),
		Auth:        handler.NewAuthHandler(authService),
		Tenant:      handler.NewTenantHandler(tenantService),
		Customer:    handler.NewCustomerHandler(customerService),
		ServiceType: handler.NewServiceTypeHandler(serviceTypeService),
		Servicing:   handler.NewServicingHandler(servicingService),
		SparePart:   handler.NewSparePartHandler(sparePartService),
		Sale:        handler.NewSaleHandler(saleService),
		Showroom:    handler.NewShowroomHandler(showroomService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Report:      handler.NewReportHandler(reportService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	go rateLimiter.Run(ctx.Done())

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Selector:        selector,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	go func() {
		ticker := time.NewTicker(idempotencySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
					log.WithError(err).Warn("Failed to purge expired idempotency keys")
				}
			}
		}
	}()

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", port).WithField("env", cfg.App.Env).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
