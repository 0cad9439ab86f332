package database

import (
	"fmt"
	"time"

	"github.com/elitemotors/detailing-api/internal/config"
	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/infrastructure/repository"
	"github.com/elitemotors/detailing-api/internal/tenant"
	applog "github.com/elitemotors/detailing-api/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: NewGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	applog.Log.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewGormLogger routes gorm's SQL log through the shared logrus logger.
// Debug mode logs every statement, otherwise only slow queries and errors.
func NewGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(applog.WithComponent("gorm"), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

type tableModel struct {
	logical string
	model   interface{}
}

// tenantTables exist once per tenant
var tenantTables = []tableModel{
	{repository.TableCustomers, &entity.Customer{}},
	{repository.TableVehicles, &entity.Vehicle{}},
	{repository.TableServiceTypes, &entity.ServiceType{}},
	{repository.TableServices, &entity.Service{}},
	{repository.TableServiceParts, &entity.ServicePart{}},
	{repository.TableSpareParts, &entity.SparePart{}},
	{repository.TableSales, &entity.Sale{}},
	{repository.TableSaleItems, &entity.SaleItem{}},
}

// showroomTables only exist for the elite tenant
var showroomTables = []tableModel{
	{repository.TableShowroomCars, &entity.ShowroomCar{}},
	{repository.TableShowroomCarImages, &entity.ShowroomCarImage{}},
}

// AutoMigrate runs GORM auto-migration for every tenant's tables
func AutoMigrate(db *gorm.DB) error {
	log := applog.WithComponent("migrate")
	log.Info("Running database migrations...")

	for _, t := range tenant.All() {
		for _, tm := range tenantTables {
			name := tenant.TableName(t, tm.logical)
			if err := db.Table(name).AutoMigrate(tm.model); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", name, err)
			}
		}
	}

	for _, tm := range showroomTables {
		name := tenant.TableName(tenant.Elite, tm.logical)
		if err := db.Table(name).AutoMigrate(tm.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", name, err)
		}
	}

	// Global tables
	if err := db.AutoMigrate(&entity.Preference{}, &entity.IdempotencyKey{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}
